// Package memstore keeps the bot's tables in memory. It backs the
// -memory-store dry-run mode and the engine tests.
package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/database/repositories"
)

type userStickerKey struct {
	userID    int64
	stickerID int64
}

type state struct {
	users        map[int64]models.User
	phones       map[string]int64
	stickers     map[int64]models.Sticker
	userStickers map[userStickerKey]models.UserSticker
	links        map[string]models.MagicLink
	nextUserID   int64
	nextEntryID  int64
}

func (s *state) clone() *state {
	c := &state{
		users:        make(map[int64]models.User, len(s.users)),
		phones:       make(map[string]int64, len(s.phones)),
		stickers:     make(map[int64]models.Sticker, len(s.stickers)),
		userStickers: make(map[userStickerKey]models.UserSticker, len(s.userStickers)),
		links:        make(map[string]models.MagicLink, len(s.links)),
		nextUserID:   s.nextUserID,
		nextEntryID:  s.nextEntryID,
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.phones {
		c.phones[k] = v
	}
	for k, v := range s.stickers {
		c.stickers[k] = v
	}
	for k, v := range s.userStickers {
		c.userStickers[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	return c
}

// Store implements every repository interface over maps.
type Store struct {
	mu     sync.Mutex
	txMu   sync.Mutex
	data   *state
	writes int

	// FailOn makes the named operation return the error, for failure tests.
	FailOn map[string]error
}

func New() *Store {
	return &Store{
		data: &state{
			users:        make(map[int64]models.User),
			phones:       make(map[string]int64),
			stickers:     make(map[int64]models.Sticker),
			userStickers: make(map[userStickerKey]models.UserSticker),
			links:        make(map[string]models.MagicLink),
		},
		FailOn: make(map[string]error),
	}
}

// Repositories handed out by InTx run with tx set and already own txMu.
type (
	userRepo struct {
		s  *Store
		tx bool
	}
	stickerRepo     struct{ s *Store }
	userStickerRepo struct {
		s  *Store
		tx bool
	}
	magicLinkRepo struct{ s *Store }
)

var (
	_ repositories.UserRepository        = userRepo{}
	_ repositories.StickerRepository     = stickerRepo{}
	_ repositories.UserStickerRepository = userStickerRepo{}
	_ repositories.MagicLinkRepository   = magicLinkRepo{}
	_ repositories.Transactor            = (*Store)(nil)
)

func (s *Store) Users() repositories.UserRepository               { return userRepo{s: s} }
func (s *Store) Stickers() repositories.StickerRepository         { return stickerRepo{s} }
func (s *Store) UserStickers() repositories.UserStickerRepository { return userStickerRepo{s: s} }
func (s *Store) MagicLinks() repositories.MagicLinkRepository     { return magicLinkRepo{s} }

// lockWrite serializes a mutation against open transactions so a rollback
// never discards writes made outside of it.
func (s *Store) lockWrite(tx bool) func() {
	if !tx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !tx {
			s.txMu.Unlock()
		}
	}
}

// Writes counts successful mutations, including rolled back ones.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) fail(op string) error {
	if err, ok := s.FailOn[op]; ok {
		return err
	}
	return nil
}

// Seed adds catalog entries directly.
func (s *Store) Seed(stickers ...models.Sticker) {
	defer s.lockWrite(false)()
	for _, st := range stickers {
		s.data.stickers[st.ID] = st
	}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, repos repositories.TxRepositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	repos := repositories.TxRepositories{
		Users:        userRepo{s: s, tx: true},
		UserStickers: userStickerRepo{s: s, tx: true},
	}
	err := fn(ctx, repos)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (r userRepo) Upsert(ctx context.Context, user *models.User) error {
	s := r.s
	defer s.lockWrite(r.tx)()
	if err := s.fail("UpsertUser"); err != nil {
		return err
	}

	if id, ok := s.data.phones[user.PhoneNumber]; ok {
		stored := s.data.users[id]
		stored.UpdatedAt = time.Now()
		s.data.users[id] = stored
		*user = stored
		s.writes++
		return nil
	}

	s.data.nextUserID++
	now := time.Now()
	user.ID = s.data.nextUserID
	user.CreatedAt = now
	user.UpdatedAt = now
	s.data.users[user.ID] = *user
	s.data.phones[user.PhoneNumber] = user.ID
	s.writes++
	return nil
}

func (r userRepo) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.data.phones[phone]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u := s.data.users[id]
	return &u, nil
}

func (r userRepo) MarkPackOpened(ctx context.Context, userID int64, openedAt, claimedBefore time.Time) error {
	s := r.s
	defer s.lockWrite(r.tx)()
	if err := s.fail("MarkPackOpened"); err != nil {
		return err
	}
	u, ok := s.data.users[userID]
	if !ok {
		return repositories.ErrClaimConflict
	}
	if u.LastPackOpenedAt != nil && u.LastPackOpenedAt.After(claimedBefore) {
		return repositories.ErrClaimConflict
	}
	at := openedAt
	u.LastPackOpenedAt = &at
	u.UpdatedAt = openedAt
	s.data.users[userID] = u
	s.writes++
	return nil
}

func (r stickerRepo) GetAll(ctx context.Context) ([]*models.Sticker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetCatalog"); err != nil {
		return nil, err
	}
	out := make([]*models.Sticker, 0, len(s.data.stickers))
	for _, st := range s.data.stickers {
		st := st
		out = append(out, &st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stickerRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Sticker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetStickersByIDs"); err != nil {
		return nil, err
	}
	out := make([]*models.Sticker, 0, len(ids))
	for _, id := range ids {
		if st, ok := s.data.stickers[id]; ok {
			st := st
			out = append(out, &st)
		}
	}
	return out, nil
}

func (r stickerRepo) BulkUpsert(ctx context.Context, stickers []*models.Sticker) (int, error) {
	s := r.s
	defer s.lockWrite(false)()
	for _, st := range stickers {
		s.data.stickers[st.ID] = *st
	}
	s.writes += len(stickers)
	return len(stickers), nil
}

func (r userStickerRepo) Get(ctx context.Context, userID, stickerID int64) (*models.UserSticker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("GetUserSticker"); err != nil {
		return nil, err
	}
	entry, ok := s.data.userStickers[userStickerKey{userID, stickerID}]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &entry, nil
}

func (r userStickerRepo) Create(ctx context.Context, entry *models.UserSticker) error {
	s := r.s
	defer s.lockWrite(r.tx)()
	if err := s.fail("CreateUserSticker"); err != nil {
		return err
	}
	key := userStickerKey{entry.UserID, entry.StickerID}
	if _, exists := s.data.userStickers[key]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint (user_id, sticker_id)=(%d, %d)", entry.UserID, entry.StickerID)
	}
	s.data.nextEntryID++
	entry.ID = s.data.nextEntryID
	s.data.userStickers[key] = *entry
	s.writes++
	return nil
}

func (r userStickerRepo) Increment(ctx context.Context, userID, stickerID int64, by int) error {
	s := r.s
	defer s.lockWrite(r.tx)()
	if err := s.fail("IncrementUserSticker"); err != nil {
		return err
	}
	key := userStickerKey{userID, stickerID}
	entry, ok := s.data.userStickers[key]
	if !ok {
		return nil
	}
	entry.Quantity += by
	s.data.userStickers[key] = entry
	s.writes++
	return nil
}

func (r userStickerRepo) Upsert(ctx context.Context, userID, stickerID int64, by int) error {
	s := r.s
	defer s.lockWrite(r.tx)()
	if err := s.fail("UpsertUserSticker"); err != nil {
		return err
	}
	key := userStickerKey{userID, stickerID}
	entry, ok := s.data.userStickers[key]
	if !ok {
		s.data.nextEntryID++
		entry = models.UserSticker{ID: s.data.nextEntryID, UserID: userID, StickerID: stickerID}
	}
	entry.Quantity += by
	s.data.userStickers[key] = entry
	s.writes++
	return nil
}

func (r userStickerRepo) GetAllByUserID(ctx context.Context, userID int64) ([]*models.UserSticker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.UserSticker
	for key, entry := range s.data.userStickers {
		if key.userID == userID {
			entry := entry
			out = append(out, &entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StickerID < out[j].StickerID })
	return out, nil
}

func (r magicLinkRepo) Create(ctx context.Context, link *models.MagicLink) error {
	s := r.s
	defer s.lockWrite(false)()
	if err := s.fail("CreateMagicLink"); err != nil {
		return err
	}
	s.data.links[link.Token] = *link
	s.writes++
	return nil
}

func (r magicLinkRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	s := r.s
	defer s.lockWrite(false)()
	if err := s.fail("DeleteExpiredMagicLinks"); err != nil {
		return 0, err
	}
	n := 0
	for token, l := range s.data.links {
		if l.ExpiresAt.Before(before) {
			delete(s.data.links, token)
			n++
		}
	}
	s.writes += n
	return n, nil
}

func (s *Store) Links() []models.MagicLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.MagicLink, 0, len(s.data.links))
	for _, l := range s.data.links {
		out = append(out, l)
	}
	return out
}
