package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/inventario-console/internal/domain/entity"
)

// Claves persistidas en el almacenamiento del cliente.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Storage almacenamiento clave/valor persistente del lado del cliente
// (cookies cifradas en la consola web, archivo en invctl, memoria en tests).
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// Session token bearer y perfil del usuario autenticado.
type Session struct {
	Token string
	User  entity.Profile
}

// Authenticated indica si hay token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store lee y escribe la sesión sobre un Storage y notifica a los suscriptores
// después de cada Write y Clear.
type Store struct {
	storage Storage

	mu     sync.Mutex
	nextID int
	subs   map[int]func(Session)
}

// NewStore crea un Store sobre storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage, subs: make(map[int]func(Session))}
}

// Read devuelve la sesión persistida. Un usuario ausente o con JSON inválido
// se lee como nil; nunca es un error.
func (s *Store) Read() Session {
	token, _ := s.storage.Get(KeyToken)
	return Session{Token: token, User: decodeUser(s.storage)}
}

func decodeUser(storage Storage) entity.Profile {
	raw, ok := storage.Get(KeyUser)
	if !ok || raw == "" {
		return nil
	}
	var user entity.Profile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return user
}

// Write persiste token y usuario; las lecturas posteriores los observan.
func (s *Store) Write(token string, user entity.Profile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: serializar usuario: %w", err)
	}
	if err := s.storage.Set(KeyToken, token); err != nil {
		return fmt.Errorf("session: guardar token: %w", err)
	}
	if err := s.storage.Set(KeyUser, string(raw)); err != nil {
		return fmt.Errorf("session: guardar usuario: %w", err)
	}
	s.notify(Session{Token: token, User: user})
	return nil
}

// Clear elimina token y usuario.
func (s *Store) Clear() error {
	err := errors.Join(s.storage.Delete(KeyToken), s.storage.Delete(KeyUser))
	if err != nil {
		return fmt.Errorf("session: limpiar: %w", err)
	}
	s.notify(Session{})
	return nil
}

// Subscribe registra fn para recibir la sesión nueva tras cada Write o Clear.
// La función devuelta cancela la suscripción.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(sess Session) {
	s.mu.Lock()
	fns := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(sess)
	}
}
