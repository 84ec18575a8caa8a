package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/dwellcheck/dwellcheck-backend/internal/models"
)

/* ------------------------------------------------------------------
   In-memory data source.

   Selected with DATA_SOURCE=memory when no database is configured;
   replaces the old import-time mock-data fallback with an explicit
   choice made at startup. Also the substrate the service tests run
   against. Reads return copies so callers can never mutate the store
   through a returned pointer.
------------------------------------------------------------------ */

type MemoryStore struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]*models.Property
	reports    map[uuid.UUID]*models.Report
	rooms      map[uuid.UUID]*models.Room
	items      map[uuid.UUID]*models.InspectionItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[uuid.UUID]*models.Property),
		reports:    make(map[uuid.UUID]*models.Report),
		rooms:      make(map[uuid.UUID]*models.Room),
		items:      make(map[uuid.UUID]*models.InspectionItem),
	}
}

func (s *MemoryStore) Properties() PropertyRepository  { return &memPropertyRepo{s} }
func (s *MemoryStore) Reports() ReportRepository       { return &memReportRepo{s} }
func (s *MemoryStore) Rooms() RoomRepository           { return &memRoomRepo{s} }
func (s *MemoryStore) Items() InspectionItemRepository { return &memItemRepo{s} }

/* ---------- properties ---------- */

type memPropertyRepo struct{ s *MemoryStore }

func (r *memPropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	cp := *p
	cp.Active = true
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.s.properties[cp.ID] = &cp
	p.Active = true
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *memPropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPropertyRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Property
	for _, p := range r.s.properties {
		if p.OwnerID == ownerID && p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memPropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.properties[p.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *p
	cp.Active = existing.Active
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	r.s.properties[p.ID] = &cp
	return nil
}

func (r *memPropertyRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Active = false
	p.UpdatedAt = time.Now().UTC()
	return nil
}

/* ---------- reports ---------- */

type memReportRepo struct{ s *MemoryStore }

func (r *memReportRepo) Create(_ context.Context, rep *models.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	cp := *rep
	cp.Rooms = nil
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.s.reports[cp.ID] = &cp
	rep.CreatedAt = now
	rep.UpdatedAt = now
	return nil
}

func (r *memReportRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	cp := *rep
	cp.Rooms = nil
	return &cp, nil
}

func (r *memReportRepo) ListByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*models.Report, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Report
	for _, rep := range r.s.reports {
		if rep.OwnerID == ownerID {
			cp := *rep
			cp.Rooms = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memReportRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ReportStatus, finalizedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rep.Status = status
	if finalizedAt != nil {
		rep.FinalizedAt = finalizedAt
	}
	rep.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memReportRepo) SetPaid(_ context.Context, id uuid.UUID, paidAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rep.Paid = true
	rep.PaidAt = &paidAt
	rep.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memReportRepo) SetPDFURL(_ context.Context, id uuid.UUID, url string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rep.PDFURL = url
	rep.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memReportRepo) DeleteWithChildren(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// items first, then rooms, then the report, all under one lock so
	// the cascade is atomic like its SQL counterpart.
	for roomID, rm := range r.s.rooms {
		if rm.ReportID != id {
			continue
		}
		for itemID, it := range r.s.items {
			if it.RoomID == roomID {
				delete(r.s.items, itemID)
			}
		}
		delete(r.s.rooms, roomID)
	}
	delete(r.s.reports, id)
	return nil
}

/* ---------- rooms ---------- */

type memRoomRepo struct{ s *MemoryStore }

func (r *memRoomRepo) Create(_ context.Context, rm *models.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pos := 0
	for _, existing := range r.s.rooms {
		if existing.ReportID == rm.ReportID {
			pos++
		}
	}
	now := time.Now().UTC()
	cp := *rm
	cp.Items = nil
	cp.Position = pos
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.s.rooms[cp.ID] = &cp
	rm.Position = pos
	rm.CreatedAt = now
	rm.UpdatedAt = now
	return nil
}

func (r *memRoomRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *rm
	cp.Items = nil
	return &cp, nil
}

func (r *memRoomRepo) ListByReportID(_ context.Context, reportID uuid.UUID) ([]*models.Room, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.Room
	for _, rm := range r.s.rooms {
		if rm.ReportID == reportID {
			cp := *rm
			cp.Items = nil
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (r *memRoomRepo) CountByReportID(_ context.Context, reportID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, rm := range r.s.rooms {
		if rm.ReportID == reportID {
			n++
		}
	}
	return n, nil
}

func (r *memRoomRepo) SetVideo(_ context.Context, id uuid.UUID, v *models.WalkthroughVideo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rm, ok := r.s.rooms[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cp := *v
	rm.Video = &cp
	rm.UpdatedAt = time.Now().UTC()
	return nil
}

/* ---------- inspection items ---------- */

type memItemRepo struct{ s *MemoryStore }

func (r *memItemRepo) Upsert(_ context.Context, it *models.InspectionItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now().UTC()
	for _, existing := range r.s.items {
		if existing.RoomID == it.RoomID && existing.CategoryID == it.CategoryID {
			existing.Condition = it.Condition
			existing.Notes = it.Notes
			existing.PhotoURLs = append([]string(nil), it.PhotoURLs...)
			existing.UpdatedAt = now
			it.ID = existing.ID
			it.CreatedAt = existing.CreatedAt
			it.UpdatedAt = now
			return nil
		}
	}
	cp := *it
	cp.PhotoURLs = append([]string(nil), it.PhotoURLs...)
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.s.items[cp.ID] = &cp
	it.CreatedAt = now
	it.UpdatedAt = now
	return nil
}

func (r *memItemRepo) GetByRoomAndCategory(_ context.Context, roomID uuid.UUID, categoryID string) (*models.InspectionItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, it := range r.s.items {
		if it.RoomID == roomID && it.CategoryID == categoryID {
			cp := *it
			cp.PhotoURLs = append([]string(nil), it.PhotoURLs...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) ListByRoomID(_ context.Context, roomID uuid.UUID) ([]*models.InspectionItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*models.InspectionItem
	for _, it := range r.s.items {
		if it.RoomID == roomID {
			cp := *it
			cp.PhotoURLs = append([]string(nil), it.PhotoURLs...)
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
