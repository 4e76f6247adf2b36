package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/application/ports"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

const referenceAttempts = 3

// OrderUseCase crea órdenes, las consulta y avanza su estado.
type OrderUseCase struct {
	txRunner    TxRunner
	orderRepo   repository.OrderRepository
	slotRepo    repository.StorageSlotRepository
	clientRepo  repository.ClientRepository
	serviceRepo repository.CleaningServiceRepository
	notifier    ports.Notifier
	log         *logger.Logger
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	slotRepo repository.StorageSlotRepository,
	clientRepo repository.ClientRepository,
	serviceRepo repository.CleaningServiceRepository,
	notifier ports.Notifier,
	log *logger.Logger,
) *OrderUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OrderUseCase{
		txRunner:    txRunner,
		orderRepo:   orderRepo,
		slotRepo:    slotRepo,
		clientRepo:  clientRepo,
		serviceRepo: serviceRepo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

// Create valida cliente y servicios, calcula el total y persiste la orden junto con un slot
// de almacenamiento (sin código) por cada ítem, todo en una transacción.
func (uc *OrderUseCase) Create(ctx context.Context, employeeID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.ClientID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		ClientID:  client.ID,
		Status:    entity.OrderStatusReceived,
		Total:     decimal.Zero,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedBy: employeeID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	slots := make([]*entity.StorageSlot, 0, len(in.Items))
	for _, it := range in.Items {
		if it.ServiceID == "" {
			return nil, domain.ErrInvalidInput
		}
		svc, err := uc.serviceRepo.GetByID(ctx, it.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc == nil || !svc.Active {
			return nil, domain.ErrNotFound
		}
		item := entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ServiceID:   svc.ID,
			Description: strings.TrimSpace(it.Description),
			Price:       svc.Price,
			CreatedAt:   now,
		}
		order.Items = append(order.Items, item)
		order.Total = order.Total.Add(svc.Price)
		slots = append(slots, &entity.StorageSlot{
			ItemID:       item.ID,
			OrderID:      order.ID,
			Box:          strings.TrimSpace(it.Box),
			SpecialNotes: strings.TrimSpace(it.SpecialNotes),
			CreatedAt:    now,
		})
	}

	for attempt := 1; ; attempt++ {
		order.Reference = newReference(now)
		err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, slotRepo repository.StorageSlotRepository) error {
			if err := orderRepo.Create(ctx, order); err != nil {
				return err
			}
			for _, s := range slots {
				if err := slotRepo.Create(ctx, s); err != nil {
					return err
				}
			}
			return nil
		})
		if errors.Is(err, domain.ErrDuplicate) && attempt < referenceAttempts {
			uc.log.Debug().Str("reference", order.Reference).Msg("referencia de orden repetida, reintentando")
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", order.ID).Str("reference", order.Reference).
		Int("items", len(order.Items)).Msg("orden creada")
	for i := range order.Items {
		order.Items[i].Slot = slots[i]
	}
	return toOrderResponse(order), nil
}

// newReference arma VIP-YYYYMMDD-XXXX con sufijo aleatorio.
func newReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:4])
	return fmt.Sprintf("VIP-%s-%s", now.Format("20060102"), suffix)
}

// GetByID obtiene la orden con sus ítems y la ubicación de cada uno.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	slots, err := uc.slotRepo.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string]*entity.StorageSlot, len(slots))
	for _, s := range slots {
		byItem[s.ItemID] = s
	}
	for i := range order.Items {
		order.Items[i].Slot = byItem[order.Items[i].ID]
	}
	return toOrderResponse(order), nil
}

// List lista órdenes con filtro de estado y paginación.
func (uc *OrderUseCase) List(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	filter := repository.OrderFilter{Limit: limit, Offset: offset}
	if status != "" {
		st := entity.OrderStatus(status)
		if !st.Valid() {
			return nil, domain.ErrInvalidInput
		}
		filter.Status = st
	}
	list, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.NewPage(limit, offset, total),
	}, nil
}

// ChangeStatus avanza el estado de la orden bajo bloqueo de fila y deja registro histórico.
// Pasar a Delivered libera los códigos de ubicación de la orden sin tocar sus slots.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, id, employeeID, status string) (*dto.OrderResponse, error) {
	next := entity.OrderStatus(status)
	if !next.Valid() {
		return nil, domain.ErrInvalidInput
	}
	var (
		order *entity.Order
		prev  entity.OrderStatus
	)
	now := uc.now()
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, _ repository.StorageSlotRepository) error {
		o, err := orderRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if !o.Status.CanTransitionTo(next) {
			return domain.ErrInvalidTransition
		}
		if err := orderRepo.UpdateStatus(ctx, id, next, now); err != nil {
			return err
		}
		if err := orderRepo.AddStatusChange(ctx, entity.OrderStatusChange{
			OrderID: id, From: o.Status, To: next, ChangedBy: employeeID, ChangedAt: now,
		}); err != nil {
			return err
		}
		prev = o.Status
		o.Status = next
		o.UpdatedAt = now
		if next == entity.OrderStatusDelivered {
			o.DeliveredAt = &now
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("order_id", id).Str("from", string(prev)).Str("to", string(next)).Msg("estado de orden actualizado")
	uc.notifyStatus(ctx, order, prev, employeeID, now)
	return toOrderResponse(order), nil
}

func (uc *OrderUseCase) notifyStatus(ctx context.Context, order *entity.Order, prev entity.OrderStatus, employeeID string, at time.Time) {
	if uc.notifier == nil {
		return
	}
	evt := ports.OrderStatusEvent{
		OrderID:   order.ID,
		Reference: order.Reference,
		ClientID:  order.ClientID,
		From:      string(prev),
		To:        string(order.Status),
		ChangedBy: employeeID,
		ChangedAt: at,
	}
	if client, err := uc.clientRepo.GetByID(ctx, order.ClientID); err == nil && client != nil {
		evt.ClientPhone = client.Phone
	}
	if err := uc.notifier.OrderStatusChanged(ctx, evt); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("no se pudo publicar el cambio de estado")
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	out := &dto.OrderResponse{
		ID:          o.ID,
		Reference:   o.Reference,
		ClientID:    o.ClientID,
		Status:      string(o.Status),
		Total:       o.Total,
		Notes:       o.Notes,
		CreatedBy:   o.CreatedBy,
		DeliveredAt: o.DeliveredAt,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, it := range o.Items {
		item := dto.OrderItemResponse{
			ID:          it.ID,
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Price:       it.Price,
		}
		if it.Slot != nil {
			item.Location = &dto.StorageSlotResponse{
				ItemID:       it.Slot.ItemID,
				OrderID:      it.Slot.OrderID,
				Box:          it.Slot.Box,
				LocationCode: it.Slot.LocationCode,
				SpecialNotes: it.Slot.SpecialNotes,
				AssignedBy:   it.Slot.AssignedBy,
				AssignedAt:   it.Slot.AssignedAt,
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}
