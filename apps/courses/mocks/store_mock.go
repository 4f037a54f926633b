package mocks

import (
	"context"
	"slices"
	"sync"

	"github.com/xdoubleu/essentia/v2/pkg/database"
	"unical.xdoubleu.com/apps/courses/internal/models"
	"unical.xdoubleu.com/apps/courses/pkg/unibo"
)

type MockCourseStore struct {
	mu      sync.RWMutex
	courses map[int]models.Course
}

func NewMockCourseStore(courses ...models.Course) *MockCourseStore {
	store := &MockCourseStore{
		mu:      sync.RWMutex{},
		courses: make(map[int]models.Course),
	}

	for _, course := range courses {
		store.courses[course.Code] = course
	}

	return store
}

func (store *MockCourseStore) GetAll(_ context.Context) ([]models.Course, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	courses := []models.Course{}
	for _, course := range store.courses {
		courses = append(courses, course)
	}

	slices.SortFunc(courses, func(a, b models.Course) int {
		return b.Code - a.Code
	})

	return courses, nil
}

func (store *MockCourseStore) GetByCode(
	_ context.Context,
	code int,
) (*models.Course, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	course, ok := store.courses[code]
	if !ok {
		return nil, database.ErrResourceNotFound
	}

	return &course, nil
}

func (store *MockCourseStore) UpsertMany(
	_ context.Context,
	courses []models.Course,
) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, course := range courses {
		if existing, ok := store.courses[course.Code]; ok {
			course.Website = existing.Website
		}
		store.courses[course.Code] = course
	}

	return nil
}

func (store *MockCourseStore) DeleteAllExcept(
	_ context.Context,
	codes []int,
) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var removed int64
	for code := range store.courses {
		if slices.Contains(codes, code) {
			continue
		}

		delete(store.courses, code)
		removed++
	}

	return removed, nil
}

func (store *MockCourseStore) SetWebsite(
	_ context.Context,
	code int,
	website unibo.Website,
) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	course, ok := store.courses[code]
	if !ok {
		return database.ErrResourceNotFound
	}

	course.Website = &website
	store.courses[code] = course

	return nil
}
