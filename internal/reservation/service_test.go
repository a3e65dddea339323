package reservation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// memStore is an in-memory Store with the same date-uniqueness guarantee
// the Postgres repo enforces.
type memStore struct {
	seq  int
	byID map[string]Reservation

	failOp string // when set, the matching op returns failErr
	failErr error
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]Reservation)}
}

func (m *memStore) fail(op string) error {
	if m.failOp == op {
		return m.failErr
	}
	return nil
}

func (m *memStore) overlap(dates []string) *Reservation {
	want := make(map[string]struct{}, len(dates))
	for _, d := range dates {
		want[d] = struct{}{}
	}
	for _, res := range m.byID {
		for _, d := range res.Dates {
			if _, ok := want[d]; ok {
				r := res
				return &r
			}
		}
	}
	return nil
}

func (m *memStore) FindOverlap(_ context.Context, dates []string) (*Reservation, error) {
	if err := m.fail("overlap"); err != nil {
		return nil, err
	}
	return m.overlap(dates), nil
}

func (m *memStore) Insert(_ context.Context, res Reservation) (string, error) {
	if err := m.fail("insert"); err != nil {
		return "", err
	}
	if m.overlap(res.Dates) != nil {
		return "", ErrDatesUnavailable
	}
	m.seq++
	res.ID = fmt.Sprintf("%024x", m.seq)
	m.byID[res.ID] = res
	return res.ID, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*Reservation, error) {
	if err := m.fail("find"); err != nil {
		return nil, err
	}
	if res, ok := m.byID[id]; ok {
		return &res, nil
	}
	return nil, nil
}

func (m *memStore) DeleteByID(_ context.Context, id, ownerEmail string) (int64, error) {
	if err := m.fail("delete"); err != nil {
		return 0, err
	}
	res, ok := m.byID[id]
	if !ok {
		return 0, nil
	}
	if ownerEmail != "" && res.Email != ownerEmail {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func newTestService(store Store) *Service {
	return NewService(store, testRules(), nil)
}

func TestBook(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)
	require.Len(t, id, IDLength)

	res := store.byID[id]
	require.Equal(t, "apple@gmail.com", res.Email)
	require.Equal(t, "Ada", res.FirstName)
	require.Equal(t, "Lovelace", res.LastName)
	require.Equal(t, 2, res.NumberOfPeople)
	require.Equal(t, []string{"2022-12-07", "2022-12-08"}, res.Dates)
}

func TestBookNormalizesFields(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	req := validRequest()
	req.Email = "  Apple@Gmail.COM  "
	req.FirstName = "  Ada "
	req.LastName = " Lovelace  "

	id, err := svc.Book(context.Background(), req)
	require.NoError(t, err)

	res := store.byID[id]
	require.Equal(t, "apple@gmail.com", res.Email)
	require.Equal(t, "Ada", res.FirstName)
	require.Equal(t, "Lovelace", res.LastName)
}

func TestBookSameRequestTwiceConflicts(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDatesUnavailable)
}

func TestBookPartialOverlapConflicts(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), validRequest()) // 12-07..12-08
	require.NoError(t, err)

	// Shares only 12-08; no partial booking of the free remainder.
	req := validRequest()
	req.CheckInDate = "2022-12-08"
	req.CheckOutDate = "2022-12-10"
	_, err = svc.Book(context.Background(), req)
	require.ErrorIs(t, err, ErrDatesUnavailable)
	require.Len(t, store.byID, 1)
}

func TestBookInvalidRequestSkipsStore(t *testing.T) {
	store := newMemStore()
	store.failOp, store.failErr = "overlap", errors.New("store must not be touched")
	svc := newTestService(store)

	req := validRequest()
	req.Email = "aaa"
	_, err := svc.Book(context.Background(), req)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestBookRaceLostAtInsert(t *testing.T) {
	// The pre-check sees free dates but a concurrent writer lands first;
	// the store's date constraint reports the clash at insert time.
	store := &racingStore{inner: newMemStore()}
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrDatesUnavailable)
}

type racingStore struct {
	inner *memStore
}

func (r *racingStore) FindOverlap(ctx context.Context, dates []string) (*Reservation, error) {
	return nil, nil // the racing writer has not committed yet
}

func (r *racingStore) Insert(ctx context.Context, res Reservation) (string, error) {
	if _, err := r.inner.Insert(ctx, res); err != nil {
		return "", err
	}
	return "", ErrDatesUnavailable // second writer loses the constraint
}

func (r *racingStore) FindByID(ctx context.Context, id string) (*Reservation, error) {
	return r.inner.FindByID(ctx, id)
}

func (r *racingStore) DeleteByID(ctx context.Context, id, ownerEmail string) (int64, error) {
	return r.inner.DeleteByID(ctx, id, ownerEmail)
}

func TestBookStoreFailure(t *testing.T) {
	store := newMemStore()
	store.failOp, store.failErr = "insert", errors.New("connection reset")
	svc := newTestService(store)

	_, err := svc.Book(context.Background(), validRequest())
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	require.ErrorIs(t, err, store.failErr)
}

func TestGet(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	id, err := svc.Book(context.Background(), validRequest())
	require.NoError(t, err)

	res, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, res.ID)
	require.Equal(t,
		fmt.Sprintf("Reservation number: %s, Name: Ada Lovelace, Number of people: 2, Dates: 2022-12-07 to 2022-12-08.", id),
		res.Summary())
}

func TestGetInvalidID(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Get(context.Background(), "ab")
	require.ErrorIs(t, err, ErrInvalidID)
}

func TestGetNotFound(t *testing.T) {
	svc := newTestService(newMemStore())

	_, err := svc.Get(context.Background(), "507f1f77bcf86cd799439011")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancel(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, id, ""))
	require.ErrorIs(t, svc.Cancel(ctx, id, ""), ErrNotFound)

	_, err = svc.Get(ctx, id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCancelInvalidID(t *testing.T) {
	svc := newTestService(newMemStore())
	require.ErrorIs(t, svc.Cancel(context.Background(), "ab", ""), ErrInvalidID)
}

func TestCancelOwnerScoped(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	id, err := svc.Book(ctx, validRequest())
	require.NoError(t, err)

	// Wrong owner: the reservation stays.
	require.ErrorIs(t, svc.Cancel(ctx, id, "other@host.com"), ErrNotFound)
	require.Len(t, store.byID, 1)

	// Matching owner, un-normalized input.
	require.NoError(t, svc.Cancel(ctx, id, "  APPLE@gmail.com "))
	require.Empty(t, store.byID)
}

func TestPersistedInvariants(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	requests := []struct{ in, out string }{
		{"2022-12-01", "2022-12-03"},
		{"2022-12-04", "2022-12-04"},
		{"2022-12-05", "2022-12-06"},
	}
	for _, r := range requests {
		req := validRequest()
		req.CheckInDate, req.CheckOutDate = r.in, r.out
		_, err := svc.Book(ctx, req)
		require.NoError(t, err)
	}

	rules := svc.Rules()
	seen := make(map[string]string)
	for id, res := range store.byID {
		require.GreaterOrEqual(t, len(res.Dates), rules.MinStayDays)
		require.LessOrEqual(t, len(res.Dates), rules.MaxStayDays)
		for _, d := range res.Dates {
			other, dup := seen[d]
			require.False(t, dup, "date %s booked by both %s and %s", d, other, id)
			seen[d] = id
		}
	}
}
