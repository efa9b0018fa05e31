package jwt

import (
	"context"
	"crypto/rsa"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

type JSONWebToken struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// NewJSONWebToken parses the PEM encoded RSA key pair. An empty private key
// is allowed for instances that only verify tokens.
func NewJSONWebToken(privateKeyPEM, publicKeyPEM string) *JSONWebToken {
	j := &JSONWebToken{}

	if privateKeyPEM != "" {
		pk, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(privateKeyPEM))
		if err != nil {
			panic(err)
		}
		j.privateKey = pk
	}

	if publicKeyPEM != "" {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
		if err != nil {
			panic(err)
		}
		j.publicKey = pub
	}

	return j
}

func (j *JSONWebToken) Sign(ctx context.Context, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(j.privateKey)
	if err != nil {
		return "", errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "an error occurred while signing the token")
	}

	return signed, nil
}

func (j *JSONWebToken) Parse(ctx context.Context, tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return j.publicKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New(http.StatusUnauthorized, status.UNAUTHORIZED, "invalid token")
	}

	return nil
}
