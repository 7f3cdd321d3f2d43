package identity

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/hari2128-cell/CureVox/internal/logger"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleVerifier validates RS256 ID tokens against Google's published x509
// certificates (the scheme Firebase Auth uses). Certificates are cached and
// refreshed according to the response's Cache-Control max-age.
type GoogleVerifier struct {
	projectID string
	certsURL  string
	client    *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

func NewGoogleVerifier(projectID, certsURL string, timeout time.Duration) *GoogleVerifier {
	return &GoogleVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    &http.Client{Timeout: timeout},
		keys:      make(map[string]*rsa.PublicKey),
	}
}

// VerifyIDToken checks signature, expiry, audience and issuer. Verification
// fails closed when the certificates cannot be fetched.
func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*Claims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(idToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		kid, _ := token.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no key id")
		}
		return v.publicKey(ctx, kid)
	},
		jwt.WithAudience(v.projectID),
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, ErrServiceUnavailable):
			return nil, ErrServiceUnavailable
		default:
			logger.Debug("identity token rejected", "error", err)
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return mapClaims(claims), nil
}

// Healthy reports whether the certificate cache is warm or refreshable.
func (v *GoogleVerifier) Healthy(ctx context.Context) bool {
	v.mu.RLock()
	warm := len(v.keys) > 0 && time.Now().Before(v.expiresAt)
	v.mu.RUnlock()
	if warm {
		return true
	}
	return v.refreshKeys(ctx) == nil
}

func (v *GoogleVerifier) publicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expiresAt)
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no certificate for key id %q", kid)
	}
	return key, nil
}

func (v *GoogleVerifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.certsURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: certificate endpoint returned %d", ErrServiceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	var certs map[string]string
	if err := json.Unmarshal(body, &certs); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCertificateKey(certPEM)
		if err != nil {
			logger.Warn("skipping unparsable identity certificate", "kid", kid, "error", err)
			continue
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: no usable certificates", ErrServiceUnavailable)
	}

	v.mu.Lock()
	v.keys = keys
	v.expiresAt = time.Now().Add(cacheTTL(resp.Header.Get("Cache-Control")))
	v.mu.Unlock()
	return nil
}

func parseCertificateKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is not RSA")
	}
	return key, nil
}

func cacheTTL(cacheControl string) time.Duration {
	var maxAge int
	if _, err := fmt.Sscanf(cacheControl, "public, max-age=%d", &maxAge); err == nil && maxAge > 0 {
		return time.Duration(maxAge) * time.Second
	}
	return 5 * time.Minute
}

func mapClaims(claims jwt.MapClaims) *Claims {
	out := &Claims{}
	if sub, ok := claims["sub"].(string); ok {
		out.UID = sub
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if verified, ok := claims["email_verified"].(bool); ok {
		out.EmailVerified = verified
	}
	if phone, ok := claims["phone_number"].(string); ok {
		out.PhoneNumber = phone
	}
	if name, ok := claims["name"].(string); ok {
		out.Name = name
	}
	return out
}
