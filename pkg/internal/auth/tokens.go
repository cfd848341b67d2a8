package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// Claims is the payload of the identity provider's internal tokens.
type Claims struct {
	Name    string `json:"name"`
	Nick    string `json:"nick"`
	IsAdmin bool   `json:"is_admin"`

	jwt.RegisteredClaims
}

func ReadToken(token string) (Claims, error) {
	var claims Claims
	out, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString("security.token_secret")), nil
	})
	if err != nil {
		return claims, err
	}
	if !out.Valid {
		return claims, fmt.Errorf("invalid token")
	}
	if len(claims.Name) == 0 {
		return claims, fmt.Errorf("token is missing the account name")
	}

	return claims, nil
}
