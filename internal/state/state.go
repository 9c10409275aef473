// Package state persists the client's cookies in a local bbolt
// database. The session cookie and the server-issued step-token
// cookies surviving restarts is what makes multi-step flows resumable,
// the way a browser's cookie store makes them resumable across page
// reloads.
package state

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// stateDirPerm is the permission mode for the state directory
	// (~/.authflow/).
	stateDirPerm = fs.FileMode(0o700)

	// stateFilePerm is the permission mode for the state database file.
	stateFilePerm = fs.FileMode(0o600)

	// stateOpenTimeout is the maximum time to wait for the bolt
	// database lock.
	stateOpenTimeout = 5 * time.Second
)

var cookiesBucket = []byte("cookies")

// storedCookie is the persisted form of one cookie. A zero Expires
// means no expiry was set; such cookies live until the server clears
// them.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// State wraps a bbolt database holding all persistent client state.
// It implements http.CookieJar. The client talks to exactly one
// backend, so cookies are keyed by name alone; domain and path
// scoping is intentionally not modeled.
type State struct {
	db *bolt.DB
}

// Load opens the state database at ~/.authflow/state.db, creating it
// if it does not exist.
func Load() (*State, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}

	return LoadAt(path)
}

// LoadAt opens a state database at the given path, creating it if it
// does not exist. Useful for tests that need an isolated database.
func LoadAt(path string) (*State, error) {
	if err := os.MkdirAll(filepath.Dir(path), stateDirPerm); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	db, err := bolt.Open(path, stateFilePerm, &bolt.Options{Timeout: stateOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(cookiesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing state db: %w", err)
	}

	return &State{db: db}, nil
}

// Close closes the database.
func (s *State) Close() error {
	return s.db.Close()
}

// SetCookies stores the cookies the server set on a response. MaxAge
// is resolved to an absolute expiry at store time; a negative MaxAge
// or an already-past expiry deletes the cookie, which is how the
// server clears step tokens once a flow completes.
func (s *State) SetCookies(_ *url.URL, cookies []*http.Cookie) {
	_ = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(cookiesBucket)
		now := time.Now()

		for _, ck := range cookies {
			if ck.Name == "" {
				continue
			}

			expires := ck.Expires
			if ck.MaxAge > 0 {
				expires = now.Add(time.Duration(ck.MaxAge) * time.Second)
			}

			if ck.MaxAge < 0 || (!expires.IsZero() && !expires.After(now)) {
				if err := b.Delete([]byte(ck.Name)); err != nil {
					return err
				}
				continue
			}

			data, err := json.Marshal(storedCookie{
				Name:    ck.Name,
				Value:   ck.Value,
				Path:    ck.Path,
				Expires: expires,
			})
			if err != nil {
				return err
			}

			if err := b.Put([]byte(ck.Name), data); err != nil {
				return err
			}
		}

		return nil
	})
}

// Cookies returns the stored, unexpired cookies. Expired entries are
// skipped on read; the server remains authoritative for whether a
// still-present token is actually valid.
func (s *State) Cookies(_ *url.URL) []*http.Cookie {
	var out []*http.Cookie

	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(cookiesBucket)
		now := time.Now()

		return b.ForEach(func(_, v []byte) error {
			var sc storedCookie
			if err := json.Unmarshal(v, &sc); err != nil {
				return nil
			}
			if !sc.Expires.IsZero() && !sc.Expires.After(now) {
				return nil
			}

			out = append(out, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path})

			return nil
		})
	})

	return out
}

// Prune deletes expired cookies from disk. Called once at startup;
// reads already skip expired entries, this just keeps the file tidy.
func (s *State) Prune() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(cookiesBucket)
		now := time.Now()

		var stale [][]byte
		err := b.ForEach(func(k, v []byte) error {
			var sc storedCookie
			if err := json.Unmarshal(v, &sc); err != nil {
				stale = append(stale, append([]byte(nil), k...))
				return nil
			}
			if !sc.Expires.IsZero() && !sc.Expires.After(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range stale {
			if err := b.Delete(k); err != nil {
				return err
			}
		}

		return nil
	})
}

func dbPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		// The database holds session tokens. Refuse to guess a location
		// rather than drop it into the working directory, where it could
		// land with wrong permissions or inside a source-controlled tree.
		return "", fmt.Errorf("determining home directory: %w", err)
	}

	return filepath.Join(home, ".authflow", "state.db"), nil
}
