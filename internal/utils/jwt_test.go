package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ktmart/marketplace-api/internal/model"
	"github.com/ktmart/marketplace-api/internal/utils"
)

func TestNewAccessTokenClaims(t *testing.T) {
	raw, err := utils.NewAccessToken("s3cr3t", "a@x.com", model.RoleSeller, 7)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tok, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tok.Method)
		}
		return []byte("s3cr3t"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}

	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"] != "a@x.com" {
		t.Fatalf("expected sub a@x.com, got %v", claims["sub"])
	}
	if claims["role"] != "seller" {
		t.Fatalf("expected role seller, got %v", claims["role"])
	}

	exp, _ := claims.GetExpirationTime()
	if exp == nil {
		t.Fatalf("expected exp claim")
	}
	want := time.Now().UTC().Add(7 * 24 * time.Hour)
	if d := exp.Time.Sub(want); d < -time.Minute || d > time.Minute {
		t.Fatalf("expected ~7 day expiry, got %v", exp.Time)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	raw, err := utils.NewAccessToken("s3cr3t", "a@x.com", model.RoleBuyer, 7)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return []byte("different"), nil
	})
	if err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
}
