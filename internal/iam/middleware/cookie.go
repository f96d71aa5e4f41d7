package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	SessionName     = "cms_session"
	SessionTokenKey = "access_token"
)

// CookieSession transporta o token de sessão em cookie assinado, como
// alternativa ao header Authorization. Um valor nil desativa o transporte.
type CookieSession struct {
	store *sessions.CookieStore
}

func NewCookieSession(secret string, secure bool) *CookieSession {
	if secret == "" {
		return nil
	}
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSession{store: store}
}

func (cs *CookieSession) Save(c *gin.Context, token string, expiry time.Time) error {
	if cs == nil {
		return nil
	}
	// cookie antigo ilegível é descartado e substituído
	session, _ := cs.store.Get(c.Request, SessionName)
	session.Values[SessionTokenKey] = token
	maxAge := int(time.Until(expiry).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	session.Options.MaxAge = maxAge
	return session.Save(c.Request, c.Writer)
}

func (cs *CookieSession) Clear(c *gin.Context) error {
	if cs == nil {
		return nil
	}
	session, _ := cs.store.Get(c.Request, SessionName)
	delete(session.Values, SessionTokenKey)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

func (cs *CookieSession) Token(c *gin.Context) string {
	if cs == nil {
		return ""
	}
	session, err := cs.store.Get(c.Request, SessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[SessionTokenKey].(string)
	return token
}
