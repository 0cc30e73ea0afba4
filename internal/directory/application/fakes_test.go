package application

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/storeatlas/api/internal/directory/domain"
)

// fakeStoreRepo is an in-memory StoreRepository with the same conflict
// semantics as the Mongo implementation: the slug acts as a unique
// constraint checked at write time.
type fakeStoreRepo struct {
	stores []domain.Store
	nextID int
	// staleCounts, when non-empty, is consumed by CountSlugMatches one
	// entry per call to simulate a pre-check racing a concurrent write.
	staleCounts []int64
	cards       []domain.StoreCard
	searchCalls []string
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{}
}

func (f *fakeStoreRepo) seed(store domain.Store) domain.Store {
	f.nextID++
	if store.ID == "" {
		store.ID = fmt.Sprintf("store-%d", f.nextID)
	}
	f.stores = append(f.stores, store)
	return store
}

func (f *fakeStoreRepo) slugTaken(slug, excludeID string) bool {
	for _, s := range f.stores {
		if s.Slug == slug && s.ID != excludeID {
			return true
		}
	}
	return false
}

func (f *fakeStoreRepo) Insert(_ context.Context, store *domain.Store) error {
	if f.slugTaken(store.Slug, "") {
		return domain.NewConflictError("slug", store.Slug)
	}
	f.nextID++
	store.ID = fmt.Sprintf("store-%d", f.nextID)
	f.stores = append(f.stores, *store)
	return nil
}

func (f *fakeStoreRepo) Update(_ context.Context, store *domain.Store) error {
	if f.slugTaken(store.Slug, store.ID) {
		return domain.NewConflictError("slug", store.Slug)
	}
	for i, s := range f.stores {
		if s.ID == store.ID {
			f.stores[i] = *store
			return nil
		}
	}
	return domain.NewNotFoundError("store", store.ID)
}

func (f *fakeStoreRepo) FindByID(_ context.Context, id string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, domain.NewNotFoundError("store", id)
}

func (f *fakeStoreRepo) FindBySlug(_ context.Context, slug string) (*domain.Store, error) {
	for _, s := range f.stores {
		if s.Slug == slug {
			found := s
			return &found, nil
		}
	}
	return nil, domain.NewNotFoundError("store", slug)
}

func (f *fakeStoreRepo) FindPage(_ context.Context, page, limit int) ([]domain.Store, int64, error) {
	sorted := append([]domain.Store{}, f.stores...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	skip := page*limit - limit
	if skip >= len(sorted) {
		return []domain.Store{}, int64(len(f.stores)), nil
	}
	end := skip + limit
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[skip:end], int64(len(f.stores)), nil
}

func (f *fakeStoreRepo) FindByTag(_ context.Context, tag string) ([]domain.Store, error) {
	matched := make([]domain.Store, 0)
	for _, s := range f.stores {
		if tag == "" && len(s.Tags) > 0 {
			matched = append(matched, s)
			continue
		}
		for _, t := range s.Tags {
			if t == tag {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched, nil
}

func (f *fakeStoreRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Store, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	matched := make([]domain.Store, 0)
	for _, s := range f.stores {
		if _, ok := wanted[s.ID]; ok {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeStoreRepo) FindAll(_ context.Context) ([]domain.Store, error) {
	return append([]domain.Store{}, f.stores...), nil
}

func (f *fakeStoreRepo) Search(_ context.Context, query string, limit int) ([]domain.Store, error) {
	f.searchCalls = append(f.searchCalls, query)
	matched := make([]domain.Store, 0)
	needle := strings.ToLower(query)
	for _, s := range f.stores {
		if strings.Contains(strings.ToLower(s.Name), needle) ||
			strings.Contains(strings.ToLower(s.Description), needle) {
			matched = append(matched, s)
		}
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (f *fakeStoreRepo) Nearby(_ context.Context, _, _ float64, _ int) ([]domain.StoreCard, error) {
	return append([]domain.StoreCard{}, f.cards...), nil
}

func (f *fakeStoreRepo) CountSlugMatches(_ context.Context, pattern string) (int64, error) {
	if len(f.staleCounts) > 0 {
		n := f.staleCounts[0]
		f.staleCounts = f.staleCounts[1:]
		return n, nil
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, s := range f.stores {
		if re.MatchString(s.Slug) {
			n++
		}
	}
	return n, nil
}

// fakeReviewRepo serves canned reviews keyed by store id.
type fakeReviewRepo struct {
	reviews []domain.Review
}

func (f *fakeReviewRepo) FindByStoreID(_ context.Context, storeID string) ([]domain.Review, error) {
	matched := make([]domain.Review, 0)
	for _, r := range f.reviews {
		if r.StoreID == storeID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeReviewRepo) FindAll(_ context.Context) ([]domain.Review, error) {
	return append([]domain.Review{}, f.reviews...), nil
}

// fakeUserRepo is an in-memory UserRepository with a unique email
// constraint.
type fakeUserRepo struct {
	users  []domain.User
	nextID int
}

func (f *fakeUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.NewConflictError("email", user.Email)
		}
	}
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, domain.NewNotFoundError("user", id)
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domain.NewNotFoundError("user", email)
}

func (f *fakeUserRepo) ToggleHeart(_ context.Context, userID, storeID string, add bool) (*domain.User, error) {
	for i, u := range f.users {
		if u.ID != userID {
			continue
		}
		hearts := make([]string, 0, len(u.Hearts)+1)
		for _, h := range u.Hearts {
			if h != storeID {
				hearts = append(hearts, h)
			}
		}
		if add {
			hearts = append(hearts, storeID)
		}
		f.users[i].Hearts = hearts
		found := f.users[i]
		return &found, nil
	}
	return nil, domain.NewNotFoundError("user", userID)
}
