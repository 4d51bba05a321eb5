// AngelaMos | 2026
// cookie.go

package session

import (
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jws"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// Codec signs session ids into compact JWS (HS256) cookie values.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

func (c *Codec) Encode(id string) (string, error) {
	signed, err := jws.Sign([]byte(id), jws.WithKey(jwa.HS256(), c.secret))
	if err != nil {
		return "", fmt.Errorf("sign session id: %w", err)
	}
	return string(signed), nil
}

func (c *Codec) Decode(value string) (string, error) {
	if value == "" {
		return "", ErrInvalidCookie
	}

	payload, err := jws.Verify([]byte(value), jws.WithKey(jwa.HS256(), c.secret))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}

	if len(payload) == 0 {
		return "", ErrInvalidCookie
	}

	return string(payload), nil
}
