package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/liftledger/liftledger-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "liftledger-test",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{Username: "u1", IsAdmin: true})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Username != "u1" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin flag to round-trip")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()

	t.Run("missing secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Secret = ""
		if _, err := MintAccessToken(cfg, now, AccessTokenPayload{Username: "u1"}); err == nil {
			t.Fatalf("expected error without secret")
		}
	})

	t.Run("missing username", func(t *testing.T) {
		if _, err := MintAccessToken(testJWTConfig(), now, AccessTokenPayload{}); err == nil {
			t.Fatalf("expected error without username")
		}
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.ExpirationMinutes = 0
		if _, err := MintAccessToken(cfg, now, AccessTokenPayload{Username: "u1"}); err == nil {
			t.Fatalf("expected error with zero ttl")
		}
	})
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.ExpirationMinutes = 1

	signed, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), AccessTokenPayload{Username: "u1"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()
	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{Username: "u1"})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}
}

func TestParseAccessTokenRejectsWrongAlg(t *testing.T) {
	cfg := testJWTConfig()
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, AccessTokenClaims{
		Username: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatalf("expected alg mismatch to fail")
	}
}
