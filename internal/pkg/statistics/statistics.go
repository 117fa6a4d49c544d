package statistics

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/cache"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/database"
)

const (
	CacheKeyUsersTotal     = "statistics:users:total"
	CacheKeyDocumentsTotal = "statistics:documents:total"
	CacheKeyQuizzesTotal   = "statistics:quizzes:total"
	CacheExpiration        = 30 * time.Minute
)

// Data holds the aggregate numbers shown on the admin dashboard.
type Data struct {
	TotalUsers     int `json:"total_users"`
	TotalDocuments int `json:"total_documents"`
	TotalQuizzes   int `json:"total_quizzes"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// UpdateCacheIfNeeded refreshes the cached aggregates at most once per
// interval. Cheap to call on every registration.
func UpdateCacheIfNeeded() {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	if time.Since(lastCacheUpdate) < cacheUpdateInterval {
		return
	}
	if err := UpdateStatisticsCache(); err != nil {
		log.Printf("statistics cache update failed: %v", err)
		return
	}
	lastCacheUpdate = time.Now()
}

// UpdateStatisticsCache recounts the aggregates and stores them in Redis.
func UpdateStatisticsCache() error {
	db := database.GetDB()

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		return err
	}
	var totalDocuments int64
	if err := db.Model(&models.Document{}).Count(&totalDocuments).Error; err != nil {
		return err
	}
	var totalQuizzes int64
	if err := db.Model(&models.Quiz{}).Count(&totalQuizzes).Error; err != nil {
		return err
	}

	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyDocumentsTotal, strconv.FormatInt(totalDocuments, 10), CacheExpiration); err != nil {
		return err
	}
	return cache.Set(CacheKeyQuizzesTotal, strconv.FormatInt(totalQuizzes, 10), CacheExpiration)
}

// GetStatistics reads the cached aggregates, recounting on a cache miss.
func GetStatistics() Data {
	totalUsers, ok1 := readCachedInt(CacheKeyUsersTotal)
	totalDocuments, ok2 := readCachedInt(CacheKeyDocumentsTotal)
	totalQuizzes, ok3 := readCachedInt(CacheKeyQuizzesTotal)

	if !ok1 || !ok2 || !ok3 {
		if err := UpdateStatisticsCache(); err == nil {
			totalUsers, _ = readCachedInt(CacheKeyUsersTotal)
			totalDocuments, _ = readCachedInt(CacheKeyDocumentsTotal)
			totalQuizzes, _ = readCachedInt(CacheKeyQuizzesTotal)
		}
	}

	return Data{
		TotalUsers:     totalUsers,
		TotalDocuments: totalDocuments,
		TotalQuizzes:   totalQuizzes,
	}
}

func readCachedInt(key string) (int, bool) {
	raw, err := cache.Get(key)
	if err != nil || raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
