package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de conta aceitos na claim "tipo".
const (
	TipoPessoa  = "pessoa"
	TipoEmpresa = "empresa"
)

// Tolerância para relógios dessincronizados entre emissor e verificador.
const clockSkew = 30 * time.Second

// ErrTokenInvalid cobre qualquer falha de validação. O chamador nunca
// descobre qual checagem falhou.
var ErrTokenInvalid = errors.New("token inválido ou expirado")

// Claims representa as informações presentes em um token de acesso.
type Claims struct {
	Nome string `json:"name"`
	Tipo string `json:"tipo"`
	jwt.RegisteredClaims
}

// JWTManager encapsula geração e validação de tokens.
type JWTManager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewJWTManager cria o gerenciador com segredo, emissor, audiência e TTL.
func NewJWTManager(secret, issuer, audience string, ttl time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), issuer: issuer, audience: audience, ttl: ttl}
}

// Generate cria um JWT HS256 para a conta informada.
func (m *JWTManager) Generate(id int64, nome, tipo string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Nome: nome,
		Tipo: tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id, 10),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAndValidate verifica assinatura, emissor, audiência e validade.
func (m *JWTManager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// SubjectID converte a claim sub para o id numérico da conta.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}
