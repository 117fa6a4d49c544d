package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
)

type fakeDocumentRepo struct {
	docs map[uint]*models.Document
}

func (f *fakeDocumentRepo) Create(d *models.Document) error { return nil }
func (f *fakeDocumentRepo) GetByID(id uint) (*models.Document, error) {
	if d, ok := f.docs[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDocumentRepo) Update(d *models.Document) error { return nil }
func (f *fakeDocumentRepo) Delete(id uint) error            { return nil }
func (f *fakeDocumentRepo) ListFiltered(filter repository.DocumentFilter) ([]models.Document, error) {
	return nil, nil
}
func (f *fakeDocumentRepo) IncrementDownloadCount(id uint, delta int64) error { return nil }

type favKey struct{ userID, documentID uint }

type fakeFavoriteRepo struct {
	favs      map[favKey]*models.Favorite
	createErr error
}

func (f *fakeFavoriteRepo) Find(userID, documentID uint) (*models.Favorite, error) {
	if fav, ok := f.favs[favKey{userID, documentID}]; ok {
		return fav, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFavoriteRepo) Create(fav *models.Favorite) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := favKey{fav.UserID, fav.DocumentID}
	if _, exists := f.favs[key]; exists {
		return errors.New("duplicate entry")
	}
	f.favs[key] = fav
	return nil
}

func (f *fakeFavoriteRepo) Delete(userID, documentID uint) error {
	delete(f.favs, favKey{userID, documentID})
	return nil
}

func (f *fakeFavoriteRepo) ListByUser(userID uint) ([]models.Favorite, error) {
	var out []models.Favorite
	for k, fav := range f.favs {
		if k.userID == userID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

func newFavoriteFakes() (*fakeDocumentRepo, *fakeFavoriteRepo) {
	docs := &fakeDocumentRepo{docs: map[uint]*models.Document{
		10: {ID: 10, Title: "Bac Maths 2023"},
	}}
	favs := &fakeFavoriteRepo{favs: make(map[favKey]*models.Favorite)}
	return docs, favs
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	docs, favs := newFavoriteFakes()

	first, err := toggleFavorite(docs, favs, 1, 10)
	require.NoError(t, err)
	second, err := toggleFavorite(docs, favs, 1, 10)
	require.NoError(t, err)
	third, err := toggleFavorite(docs, favs, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, true}, []bool{first, second, third})

	list, err := favs.ListByUser(1)
	require.NoError(t, err)
	assert.Len(t, list, 1, "round trip ends with exactly one link")
}

func TestToggleFavoriteUnknownDocument(t *testing.T) {
	docs, favs := newFavoriteFakes()

	_, err := toggleFavorite(docs, favs, 1, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, favs.favs)
}

func TestToggleFavoriteLostInsertRace(t *testing.T) {
	docs, favs := newFavoriteFakes()

	// The insert is rejected by the unique index because a concurrent toggle
	// committed first; the state still counts as favorited.
	favs.createErr = errors.New("Error 1062: Duplicate entry")
	racing := &racingFavoriteRepo{fakeFavoriteRepo: favs}

	favorited, err := toggleFavorite(docs, racing, 1, 10)
	require.NoError(t, err)
	assert.True(t, favorited)
}

// racingFavoriteRepo misses the first Find and hits the second, simulating a
// concurrent insert landing between check and act.
type racingFavoriteRepo struct {
	*fakeFavoriteRepo
	finds int
}

func (r *racingFavoriteRepo) Find(userID, documentID uint) (*models.Favorite, error) {
	r.finds++
	if r.finds == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Favorite{UserID: userID, DocumentID: documentID}, nil
}
