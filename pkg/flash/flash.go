package flash

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const (
	CategorySuccess = "success"
	CategoryInfo    = "info"
	CategoryWarning = "warning"
	CategoryDanger  = "danger"
)

const cookieName = "clinic_flash"

// Message is a one-shot notice shown on the next rendered page.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Store keeps pending messages in a signed cookie until they are consumed.
type Store struct {
	codec  *securecookie.SecureCookie
	secure bool
}

func NewStore(secret string, secure bool) *Store {
	codec := securecookie.New([]byte(secret), nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(0)
	return &Store{codec: codec, secure: secure}
}

// Add queues a message behind the ones already pending on the request.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, category, text string) {
	messages := append(s.pending(r), Message{Category: category, Text: text})

	encoded, err := s.codec.Encode(cookieName, messages)
	if err != nil {
		return
	}
	s.setCookie(w, encoded, 0)
}

func (s *Store) Info(w http.ResponseWriter, r *http.Request, text string) {
	s.Add(w, r, CategoryInfo, text)
}

func (s *Store) Danger(w http.ResponseWriter, r *http.Request, text string) {
	s.Add(w, r, CategoryDanger, text)
}

// Consume returns the pending messages and clears the cookie.
func (s *Store) Consume(w http.ResponseWriter, r *http.Request) []Message {
	messages := s.pending(r)
	if _, err := r.Cookie(cookieName); err == nil {
		s.setCookie(w, "", -1)
	}
	return messages
}

func (s *Store) pending(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}

	var messages []Message
	if err := s.codec.Decode(cookieName, cookie.Value, &messages); err != nil {
		return nil
	}
	return messages
}

func (s *Store) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
