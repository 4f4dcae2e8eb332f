package account

import "time"

// CookieName is the cookie that carries the session token.
const CookieName = "jwt"

// CookieDirective tells the HTTP layer what to do with the session cookie.
type CookieDirective struct {
	Name     string
	Value    string
	MaxAge   time.Duration
	HTTPOnly bool
	Clear    bool
}

// Response is what an auth operation hands back: a body plus an optional
// cookie instruction.
type Response struct {
	Body   any
	Cookie *CookieDirective
}

type TokenBody struct {
	Token string `json:"token"`
}

type MessageBody struct {
	Message string `json:"message"`
}

func setSessionCookie(token string, maxAge time.Duration) *CookieDirective {
	return &CookieDirective{
		Name:     CookieName,
		Value:    token,
		MaxAge:   maxAge,
		HTTPOnly: true,
	}
}

func clearSessionCookie() *CookieDirective {
	return &CookieDirective{
		Name:     CookieName,
		HTTPOnly: true,
		Clear:    true,
	}
}
