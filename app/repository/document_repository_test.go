package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

func doc(id uint, subject string, year int, docType string) models.Document {
	return models.Document{
		ID:      id,
		Subject: models.Subject{Name: subject},
		Year:    year,
		Type:    docType,
	}
}

func ids(docs []models.Document) []uint {
	out := make([]uint, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID)
	}
	return out
}

func TestSortDocumentsPackOrder(t *testing.T) {
	// three bac documents across subjects and years, deliberately shuffled
	docs := []models.Document{
		doc(3, "Philosophie", 2021, models.DocumentTypeSubject),
		doc(1, "Mathématiques", 2023, models.DocumentTypeSubject),
		doc(2, "Mathématiques", 2022, models.DocumentTypeSubject),
	}

	sortDocuments(docs)

	assert.Equal(t, []uint{1, 2, 3}, ids(docs),
		"subject name asc, then year desc")
}

func TestSortDocumentsTypeBreaksTies(t *testing.T) {
	docs := []models.Document{
		doc(1, "Mathématiques", 2023, models.DocumentTypeSubject),
		doc(2, "Mathématiques", 2023, models.DocumentTypeCorrection),
	}

	sortDocuments(docs)

	// "correction" < "subject", so the correction leads its paper within
	// the same subject and year
	assert.Equal(t, []uint{2, 1}, ids(docs))
}

func TestSortDocumentsStable(t *testing.T) {
	docs := []models.Document{
		doc(1, "SVT", 2020, models.DocumentTypeSubject),
		doc(2, "SVT", 2020, models.DocumentTypeSubject),
		doc(3, "SVT", 2020, models.DocumentTypeSubject),
	}

	sortDocuments(docs)

	assert.Equal(t, []uint{1, 2, 3}, ids(docs), "equal keys keep insertion order")
}
