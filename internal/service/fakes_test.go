package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ironlog/meso-tracker/internal/domain"
	"ironlog/meso-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests.

func newTestUserID() primitive.ObjectID {
	return primitive.NewObjectID()
}

type fakeMesocycleRepo struct {
	mesocycles map[string]*domain.Mesocycle // keyed by userID.Hex()+"/"+name
}

func newFakeMesocycleRepo() *fakeMesocycleRepo {
	return &fakeMesocycleRepo{mesocycles: make(map[string]*domain.Mesocycle)}
}

func mesoKey(userID primitive.ObjectID, name string) string {
	return userID.Hex() + "/" + name
}

func (r *fakeMesocycleRepo) Create(ctx context.Context, m *domain.Mesocycle) (primitive.ObjectID, error) {
	key := mesoKey(m.UserID, m.Name)
	if _, ok := r.mesocycles[key]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	m.ID = primitive.NewObjectID()
	cp := *m
	r.mesocycles[key] = &cp
	return m.ID, nil
}

func (r *fakeMesocycleRepo) GetByName(ctx context.Context, userID primitive.ObjectID, name string) (*domain.Mesocycle, error) {
	m, ok := r.mesocycles[mesoKey(userID, name)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMesocycleRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Mesocycle, error) {
	var out []domain.Mesocycle
	for _, m := range r.mesocycles {
		if m.UserID == userID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeMesocycleRepo) Update(ctx context.Context, m *domain.Mesocycle) error {
	key := mesoKey(m.UserID, m.Name)
	if _, ok := r.mesocycles[key]; !ok {
		return repository.ErrNotFound
	}
	cp := *m
	r.mesocycles[key] = &cp
	return nil
}

func (r *fakeMesocycleRepo) Delete(ctx context.Context, userID primitive.ObjectID, name string) error {
	key := mesoKey(userID, name)
	if _, ok := r.mesocycles[key]; !ok {
		return repository.ErrNotFound
	}
	delete(r.mesocycles, key)
	return nil
}

type fakeProgramRepo struct {
	programs map[string]*domain.Program // keyed by userID.Hex()
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[string]*domain.Program)}
}

func (r *fakeProgramRepo) Upsert(ctx context.Context, p *domain.Program) error {
	cp := *p
	r.programs[p.UserID.Hex()] = &cp
	return nil
}

func (r *fakeProgramRepo) GetByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Program, error) {
	p, ok := r.programs[userID.Hex()]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProgramRepo) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, ok := r.programs[userID.Hex()]; !ok {
		return repository.ErrNotFound
	}
	delete(r.programs, userID.Hex())
	return nil
}

type fakeWorkoutRepo struct {
	records map[string]*domain.WorkoutRecord // keyed by userID.Hex()+"/"+date
	upserts int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{records: make(map[string]*domain.WorkoutRecord)}
}

func workoutKey(userID primitive.ObjectID, date time.Time) string {
	return fmt.Sprintf("%s/%s", userID.Hex(), date.Format("2006-01-02"))
}

func (r *fakeWorkoutRepo) Get(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutRecord, error) {
	rec, ok := r.records[workoutKey(userID, date)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRecord(rec), nil
}

func (r *fakeWorkoutRepo) Upsert(ctx context.Context, record *domain.WorkoutRecord) error {
	r.upserts++
	r.records[workoutKey(record.UserID, record.Date)] = copyRecord(record)
	return nil
}

func (r *fakeWorkoutRepo) GetRange(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error) {
	var out []domain.WorkoutRecord
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, *copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeWorkoutRepo) FindLatestWithExercise(ctx context.Context, userID primitive.ObjectID, exercise string, before, notBefore time.Time) (*domain.WorkoutRecord, error) {
	var best *domain.WorkoutRecord
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if !rec.Date.Before(before) || rec.Date.Before(notBefore) {
			continue
		}
		if _, ok := rec.Exercises[exercise]; !ok {
			continue
		}
		if best == nil || rec.Date.After(best.Date) {
			best = rec
		}
	}
	if best == nil {
		return nil, repository.ErrNotFound
	}
	return copyRecord(best), nil
}

func copyRecord(rec *domain.WorkoutRecord) *domain.WorkoutRecord {
	cp := *rec
	cp.Exercises = make(map[string][]domain.SetEntry, len(rec.Exercises))
	for name, sets := range rec.Exercises {
		cp.Exercises[name] = append([]domain.SetEntry(nil), sets...)
	}
	cp.ExerciseOrder = append([]string(nil), rec.ExerciseOrder...)
	return &cp
}

type fakeUserRepo struct {
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if _, ok := r.users[user.Email]; ok {
		return primitive.NilObjectID, repository.ErrConflict
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	r.users[user.Email] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeFileStorage struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (s *fakeFileStorage) Upload(ctx context.Context, objectKey, contentType string, body []byte) error {
	s.objects[objectKey] = append([]byte(nil), body...)
	s.types[objectKey] = contentType
	return nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/" + objectKey + "?signed=1", nil
}

func (s *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	delete(s.objects, objectKey)
	return nil
}
