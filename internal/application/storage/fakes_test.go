package storage_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
)

// memSlots implementación en memoria de repository.StorageSlotRepository para tests.
type memSlots struct {
	mu     sync.Mutex
	slots  map[string]*entity.StorageSlot
	orders map[string]memOrder
	// errores forzados por método
	countErr  error
	existsErr error
	findErr   error
	listErr   error
}

type memOrder struct {
	reference string
	client    string
	status    entity.OrderStatus
}

var _ repository.StorageSlotRepository = (*memSlots)(nil)

func newMemSlots() *memSlots {
	return &memSlots{slots: map[string]*entity.StorageSlot{}, orders: map[string]memOrder{}}
}

func (m *memSlots) addOrder(id, reference, client string, status entity.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[id] = memOrder{reference: reference, client: client, status: status}
}

// addSlot registra un ítem; code vacío = sin código asignado.
func (m *memSlots) addSlot(itemID, orderID, box, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &entity.StorageSlot{ItemID: itemID, OrderID: orderID, Box: box}
	if code != "" {
		c := code
		s.LocationCode = &c
	}
	m.slots[itemID] = s
}

func (m *memSlots) setStatus(orderID string, status entity.OrderStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[orderID]
	o.status = status
	m.orders[orderID] = o
}

func (m *memSlots) active(s *entity.StorageSlot) bool {
	return m.orders[s.OrderID].status != entity.OrderStatusDelivered
}

func (m *memSlots) Create(_ context.Context, slot *entity.StorageSlot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *slot
	m.slots[slot.ItemID] = &cp
	return nil
}

func (m *memSlots) GetByItemID(_ context.Context, itemID string) (*entity.StorageSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[itemID]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.OrderStatus = m.orders[s.OrderID].status
	return &cp, nil
}

func (m *memSlots) ListByOrder(_ context.Context, orderID string) ([]*entity.StorageSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.StorageSlot
	for _, s := range m.slots {
		if s.OrderID == orderID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memSlots) CountActiveByBox(_ context.Context, box string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.countErr != nil {
		return 0, m.countErr
	}
	n := 0
	for _, s := range m.slots {
		if s.Box == box && s.HasCode() && m.active(s) {
			n++
		}
	}
	return n, nil
}

func (m *memSlots) CodeExists(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, s := range m.slots {
		if s.HasCode() && *s.LocationCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSlots) FindActiveByCode(_ context.Context, code string) (*entity.SlotOccupant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, s := range m.slots {
		if s.HasCode() && *s.LocationCode == code && m.active(s) {
			occ := m.occupant(s)
			return &occ, nil
		}
	}
	return nil, nil
}

func (m *memSlots) ListActiveByBox(_ context.Context, box string) ([]entity.SlotOccupant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []entity.SlotOccupant
	for _, s := range m.slots {
		if s.Box == box && s.HasCode() && m.active(s) {
			out = append(out, m.occupant(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	return out, nil
}

func (m *memSlots) AssignLocation(_ context.Context, itemID, box, code, notes, assignedBy string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[itemID]
	if !ok {
		return errors.New("slot inexistente")
	}
	c := code
	s.Box = box
	s.LocationCode = &c
	s.SpecialNotes = notes
	s.AssignedBy = &assignedBy
	s.AssignedAt = &at
	return nil
}

func (m *memSlots) LockBox(context.Context, string) error { return nil }

func (m *memSlots) LockCode(context.Context, string) error { return nil }

func (m *memSlots) occupant(s *entity.StorageSlot) entity.SlotOccupant {
	o := m.orders[s.OrderID]
	return entity.SlotOccupant{
		ItemID:            s.ItemID,
		OrderID:           s.OrderID,
		OrderReference:    o.reference,
		OrderStatus:       o.status,
		ClientDisplayName: o.client,
		LocationCode:      *s.LocationCode,
		Box:               s.Box,
	}
}

// memTx ejecuta fn directamente sobre el repositorio en memoria.
type memTx struct{ slots *memSlots }

func (t memTx) RunStorage(_ context.Context, fn func(slots repository.StorageSlotRepository) error) error {
	return fn(t.slots)
}

// rendezvousSlots retiene cada FindActiveByCode hasta que dos llamadas lleguen juntas o pase
// wait. Sin exclusión entre asignaciones, ambas verificarían el código antes de que la otra escriba.
type rendezvousSlots struct {
	*memSlots
	wait    time.Duration
	arrived atomic.Int32
	gate    chan struct{}
}

func newRendezvousSlots(m *memSlots, wait time.Duration) *rendezvousSlots {
	return &rendezvousSlots{memSlots: m, wait: wait, gate: make(chan struct{})}
}

func (r *rendezvousSlots) FindActiveByCode(ctx context.Context, code string) (*entity.SlotOccupant, error) {
	if r.arrived.Add(1) == 2 {
		close(r.gate)
	}
	select {
	case <-r.gate:
	case <-time.After(r.wait):
	}
	return r.memSlots.FindActiveByCode(ctx, code)
}

// repoTx ejecuta fn sobre cualquier repositorio de slots.
type repoTx struct{ slots repository.StorageSlotRepository }

func (t repoTx) RunStorage(_ context.Context, fn func(slots repository.StorageSlotRepository) error) error {
	return fn(t.slots)
}

// stubAuto generador automático con respuesta fija.
type stubAuto struct {
	code  string
	err   error
	calls int
}

func (a *stubAuto) TryGenerate(context.Context, string) (string, error) {
	a.calls++
	return a.code, a.err
}

// countingRecorder cuenta los eventos de métricas.
type countingRecorder struct {
	mu        sync.Mutex
	generated map[string]int
	validated map[string]int
	assigned  map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{generated: map[string]int{}, validated: map[string]int{}, assigned: map[string]int{}}
}

func (r *countingRecorder) CodeGenerated(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generated[mode]++
}

func (r *countingRecorder) CodeValidated(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validated[result]++
}

func (r *countingRecorder) LocationAssigned(mode string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned[mode]++
}
