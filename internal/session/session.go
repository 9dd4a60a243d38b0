// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package session holds the process-wide client state: auth, the
// last-fetched lists, language and theme, and per-resource loading
// flags. All mutation goes through the action methods; views only read.
//
// The store is constructed explicitly and passed down, never a package
// global. Fetch actions are fenced: each begin bumps a per-resource
// sequence number and a settling fetch only writes state while it is
// still the latest, so a slow superseded response cannot overwrite
// newer data.
package session // import "github.com/resvlab/resv/internal/session"

import (
	"context"
	"sync"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/logging"
	"github.com/resvlab/resv/internal/model"
	"github.com/resvlab/resv/internal/store"
)

// Resource names a fetchable state slice.
type Resource string

const (
	ResourceEquipment    Resource = "equipment"
	ResourceCategories   Resource = "categories"
	ResourceReservations Resource = "reservations"
	ResourceSettings     Resource = "settings"
)

// Store is the session state container.
type Store struct {
	mu      sync.Mutex
	client  *api.Client
	persist store.Store

	sess model.Session

	equipments       []model.Equipment
	equipmentTotal   int
	categories       []string
	reservations     []model.Reservation
	reservationTotal int
	settings         model.Settings

	language string
	darkMode bool

	loading  map[Resource]bool
	fetchSeq map[Resource]uint64
}

// New builds a Store and primes it from persisted state, the analogue
// of the web client reading localStorage at startup. A nil persist
// store keeps everything in memory only.
func New(ctx context.Context, persist store.Store) *Store {
	s := &Store{
		persist:  persist,
		loading:  make(map[Resource]bool),
		fetchSeq: make(map[Resource]uint64),
		language: "zh-CN",
	}
	if persist == nil {
		return s
	}
	sess, err := store.LoadSession(ctx, persist)
	if err != nil {
		logging.Warnf("session: load persisted auth: %v", err)
	} else {
		s.sess = sess
	}
	if lang, err := persist.Get(ctx, store.KeyLanguage); err == nil && lang != "" {
		s.language = lang
	}
	if dark, err := persist.Get(ctx, store.KeyDarkMode); err == nil {
		s.darkMode = dark == "true"
	}
	return s
}

// AttachClient wires the API client the actions dispatch through. Done
// after construction because the client's token source is this store.
func (s *Store) AttachClient(c *api.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = c
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.Token
}

// Session returns a copy of the current auth state.
func (s *Store) Session() model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// IsLoggedIn reports whether a token is held.
func (s *Store) IsLoggedIn() bool {
	return s.Session().IsLoggedIn()
}

// Login posts form-encoded credentials and, on success, stores the
// grant in memory and in persisted storage. It returns false instead
// of an error: the login view only needs to know whether to proceed,
// and the pipeline already surfaced the failure.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	c := s.apiClient()
	if c == nil {
		logging.Errorf("session: login without attached client")
		return false
	}
	resp, err := c.AdminLogin(ctx, username, password)
	if err != nil {
		logging.Debugf("session: login failed: %v", err)
		return false
	}
	sess := model.Session{
		Token: resp.AccessToken,
		User: model.User{
			ID:       resp.AdminID,
			Username: resp.Username,
			Name:     resp.Name,
			Role:     resp.Role,
		},
	}
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()

	if s.persist != nil {
		if err := store.SaveSession(ctx, s.persist, sess); err != nil {
			logging.Warnf("session: persist auth: %v", err)
		}
	}
	return true
}

// Logout clears auth state unconditionally, in memory and persisted.
// Idempotent; also invoked by the pipeline's AuthExpired hook.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.sess = model.Session{}
	s.mu.Unlock()

	if s.persist != nil {
		if err := store.ClearSession(ctx, s.persist); err != nil {
			logging.Warnf("session: clear persisted auth: %v", err)
		}
	}
}

// beginFetch marks a resource loading and returns its fence sequence.
func (s *Store) beginFetch(r Resource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq[r]++
	s.loading[r] = true
	return s.fetchSeq[r]
}

// settleFetch ends a fetch. It returns true when seq is still the
// latest for the resource; a stale fetch neither writes state nor
// touches the loading flag, which belongs to the most recent fetch.
func (s *Store) settleFetch(r Resource, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchSeq[r] != seq {
		return false
	}
	s.loading[r] = false
	return true
}

// IsLoading reports whether the most recent fetch of r is in flight.
func (s *Store) IsLoading(r Resource) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading[r]
}

// FetchEquipments replaces the equipment slice with one page. On
// failure the slice is left untouched and the zero list is returned;
// the pipeline has already notified.
func (s *Store) FetchEquipments(ctx context.Context, q api.EquipmentQuery) model.EquipmentList {
	seq := s.beginFetch(ResourceEquipment)
	list, err := s.apiClient().ListEquipment(ctx, q)
	if !s.settleFetch(ResourceEquipment, seq) {
		logging.Debugf("session: discarding stale equipment fetch")
		return model.EquipmentList{}
	}
	if err != nil {
		logging.Debugf("session: fetch equipments: %v", err)
		return model.EquipmentList{}
	}
	s.mu.Lock()
	s.equipments = list.Items
	s.equipmentTotal = list.Total
	s.mu.Unlock()
	return list
}

// FetchCategories replaces the category-name slice.
func (s *Store) FetchCategories(ctx context.Context) []string {
	seq := s.beginFetch(ResourceCategories)
	names, err := s.apiClient().GetEquipmentCategoryNames(ctx)
	if !s.settleFetch(ResourceCategories, seq) {
		logging.Debugf("session: discarding stale category fetch")
		return nil
	}
	if err != nil {
		logging.Debugf("session: fetch categories: %v", err)
		return nil
	}
	s.mu.Lock()
	s.categories = names
	s.mu.Unlock()
	return names
}

// FetchReservations replaces the reservation slice with one page.
func (s *Store) FetchReservations(ctx context.Context, q api.ReservationQuery) model.ReservationList {
	seq := s.beginFetch(ResourceReservations)
	list, err := s.apiClient().ListReservations(ctx, q)
	if !s.settleFetch(ResourceReservations, seq) {
		logging.Debugf("session: discarding stale reservation fetch")
		return model.ReservationList{}
	}
	if err != nil {
		logging.Debugf("session: fetch reservations: %v", err)
		return model.ReservationList{}
	}
	s.mu.Lock()
	s.reservations = list.Items
	s.reservationTotal = list.Total
	s.mu.Unlock()
	return list
}

// FetchSettings replaces the settings document.
func (s *Store) FetchSettings(ctx context.Context) model.Settings {
	seq := s.beginFetch(ResourceSettings)
	settings, err := s.apiClient().GetSettings(ctx)
	if !s.settleFetch(ResourceSettings, seq) {
		logging.Debugf("session: discarding stale settings fetch")
		return nil
	}
	if err != nil {
		logging.Debugf("session: fetch settings: %v", err)
		return nil
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return settings
}

// Equipments returns the cached equipment page and total.
func (s *Store) Equipments() ([]model.Equipment, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.equipments, s.equipmentTotal
}

// Categories returns the cached category names.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories
}

// Reservations returns the cached reservation page and total.
func (s *Store) Reservations() ([]model.Reservation, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations, s.reservationTotal
}

// Settings returns the cached settings document.
func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Language returns the active language code.
func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// SetLanguage switches the language and mirrors it to persisted
// storage. No network involved.
func (s *Store) SetLanguage(ctx context.Context, lang string) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	if s.persist != nil {
		if err := s.persist.Set(ctx, store.KeyLanguage, lang); err != nil {
			logging.Warnf("session: persist language: %v", err)
		}
	}
}

// DarkMode reports the theme flag.
func (s *Store) DarkMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkMode
}

// ToggleDarkMode flips the theme flag, mirrors it, and returns the new
// value.
func (s *Store) ToggleDarkMode(ctx context.Context) bool {
	s.mu.Lock()
	s.darkMode = !s.darkMode
	dark := s.darkMode
	s.mu.Unlock()
	if s.persist != nil {
		val := "false"
		if dark {
			val = "true"
		}
		if err := s.persist.Set(ctx, store.KeyDarkMode, val); err != nil {
			logging.Warnf("session: persist theme: %v", err)
		}
	}
	return dark
}

func (s *Store) apiClient() *api.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}
