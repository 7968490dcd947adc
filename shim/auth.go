package shim

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SeatClaims identifies which of the four seats a shim connection is
// allowed to track, carried the same way the teacher's CustomClaims
// carries a userID.
type SeatClaims struct {
	Seat int `json:"seat"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token binding a connection to seat, valid for ttl.
func GenerateToken(seat int, secret string, ttl time.Duration) (string, error) {
	claims := &SeatClaims{
		Seat: seat,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenStr and returns the seat it is bound to.
func ParseToken(tokenStr, secret string) (int, error) {
	claims := &SeatClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("shim: token not valid")
	}
	if claims.Seat < 0 || claims.Seat > 3 {
		return 0, fmt.Errorf("shim: token carries out-of-range seat %d", claims.Seat)
	}
	return claims.Seat, nil
}
