package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"bigtwo-server/internal/config"
	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer issues the JWT
const Issuer = "bigtwo-server"

// Audience is the intended JWT audience
const Audience = "bigtwo-tables"

// Lifetime is how long a signed token is valid for
const Lifetime = time.Hour * 24 * 30

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys will load the public and private keys named by the configuration
// this method should only be called once.
func LoadKeys() error {
	cfg := config.Instance().JWT
	return LoadKeysFromFiles(cfg.PublicKey, cfg.PrivateKey)
}

// LoadKeysFromFiles will load the PEM encoded keys
func LoadKeysFromFiles(publicPath, privatePath string) error {
	pub, err := loadPublicKey(publicPath)
	if err != nil {
		return err
	}

	priv, err := loadPrivateKey(privatePath)
	if err != nil {
		return err
	}

	publicKey = pub
	privateKey = priv
	return nil
}

// Sign will sign a JWT for the player ID
func Sign(playerID int64) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(Lifetime)),
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(playerID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidUserID will validate a signed JWT and return the player ID it was issued for
func ValidUserID(signedString string) (int64, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	var claims jwtgo.RegisteredClaims
	_, err := jwtgo.ParseWithClaims(signedString, &claims, func(token *jwtgo.Token) (interface{}, error) {
		return publicKey, nil
	},
		jwtgo.WithValidMethods([]string{jwtgo.SigningMethodRS256.Alg()}),
		jwtgo.WithAudience(Audience),
		jwtgo.WithIssuer(Issuer),
	)

	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject: %w", err)
	}

	if id <= 0 {
		return 0, errors.New("invalid subject")
	}

	return id, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return key, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return key, nil
}
