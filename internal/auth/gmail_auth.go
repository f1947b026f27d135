package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
)

// GetGmailClient builds an authenticated HTTP client for sending mail.
// Returns nil (not an error) when credentials are missing so the caller can
// run with notifications degraded rather than refuse to start.
func GetGmailClient(credentialsFile, tokenFile string) *http.Client {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		log.Printf("[gmail] cannot read %s: %v — email delivery disabled", credentialsFile, err)
		return nil
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		log.Printf("[gmail] cannot parse client secret file: %v — email delivery disabled", err)
		return nil
	}

	tok, err := tokenFromFile(tokenFile)
	if err != nil {
		// No stored session: one-time interactive login, then the token is
		// cached for every later start.
		tok = getTokenFromWeb(config)
		if tok == nil {
			return nil
		}
		saveToken(tokenFile, tok)
	}
	return config.Client(context.Background(), tok)
}

// getTokenFromWeb asks the operator to complete the OAuth flow in a browser
// and paste the resulting code back.
func getTokenFromWeb(config *oauth2.Config) *oauth2.Token {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\nOpen this link to authorize Gmail access:\n%v\n\nPaste the code here: ", authURL)

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Printf("[gmail] unable to read authorization code: %v", err)
		return nil
	}

	tok, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		log.Printf("[gmail] token exchange failed: %v", err)
		return nil
	}
	return tok
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Printf("[gmail] unable to cache oauth token: %v", err)
		return
	}
	defer f.Close()
	json.NewEncoder(f).Encode(token)
}
