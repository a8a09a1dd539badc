package oauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrVerifier dikembalikan ketika verifier eksternal menolak token atau tidak
// bisa dihubungi. Tidak ada retry; gagal langsung dilaporkan ke caller.
var ErrVerifier = errors.New("external verifier rejected the token")

// Claim adalah identitas yang diklaim oleh verifier Google.
type Claim struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// VerifyGoogleToken memverifikasi id_token ke endpoint tokeninfo.
// verifyURL bisa diarahkan ke server palsu saat testing.
func VerifyGoogleToken(verifyURL, token string) (Claim, error) {
	resp, err := httpClient.Get(fmt.Sprintf("%s?id_token=%s", verifyURL, token))
	if err != nil {
		return Claim{}, ErrVerifier
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Claim{}, ErrVerifier
	}

	var claim Claim
	if err := json.NewDecoder(resp.Body).Decode(&claim); err != nil {
		return Claim{}, ErrVerifier
	}
	if claim.Email == "" {
		return Claim{}, ErrVerifier
	}
	return claim, nil
}
