package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vipcleaners/pos-api/internal/application/dto"
	"github.com/vipcleaners/pos-api/internal/domain"
	"github.com/vipcleaners/pos-api/internal/domain/entity"
	"github.com/vipcleaners/pos-api/internal/domain/repository"
	"github.com/vipcleaners/pos-api/internal/domain/storage"
	"github.com/vipcleaners/pos-api/pkg/logger"
)

// Modos de generación reportados al cliente.
const (
	ModeAutomatic      = "automatic"
	ModeManual         = "manual"
	ModeManualFallback = "manual_fallback"
	ModeOverride       = "override"
)

// ValidationErrorMessage se devuelve literal cuando la consulta de disponibilidad falla; los clientes lo comparan.
const ValidationErrorMessage = "validation error"

const defaultLockTimeout = 5 * time.Second

// ServiceDeps dependencias del servicio de ubicaciones.
type ServiceDeps struct {
	Slots       repository.StorageSlotRepository
	Tx          TxRunner
	Auto        AutoCodeGenerator // nil = sin ruta automática
	Recorder    Recorder          // nil = sin métricas
	Log         *logger.Logger
	LockTimeout time.Duration
	Now         func() time.Time
}

// Service genera, valida, lista y asigna códigos de ubicación.
// La ocupación se recalcula siempre desde la base de datos; no hay contadores en memoria.
type Service struct {
	slots       repository.StorageSlotRepository
	tx          TxRunner
	auto        AutoCodeGenerator
	rec         Recorder
	log         *logger.Logger
	locks       *boxLocks
	codeLocks   *boxLocks
	lockTimeout time.Duration
	now         func() time.Time
}

// NewService construye el servicio.
func NewService(deps ServiceDeps) *Service {
	s := &Service{
		slots:       deps.Slots,
		tx:          deps.Tx,
		auto:        deps.Auto,
		rec:         deps.Recorder,
		log:         deps.Log,
		locks:       newBoxLocks(),
		codeLocks:   newBoxLocks(),
		lockTimeout: deps.LockTimeout,
		now:         deps.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = defaultLockTimeout
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Generate propone el siguiente código para la caja. Nunca falla: degrada de la función
// de base de datos a la generación manual y de ésta al código EST-AUTO.
func (s *Service) Generate(ctx context.Context, box string) dto.GenerateCodeResponse {
	box = strings.TrimSpace(box)
	code, mode := s.generate(ctx, s.slots, box)
	if s.rec != nil {
		s.rec.CodeGenerated(mode)
	}
	return dto.GenerateCodeResponse{Code: code, Box: box, Mode: mode}
}

func (s *Service) generate(ctx context.Context, slots repository.StorageSlotRepository, box string) (string, string) {
	if !storage.IsStrictBoxLabel(box) {
		return s.manualCode(ctx, slots, box), ModeManual
	}
	if code := s.tryAutomatic(ctx, box); code != "" {
		return code, ModeAutomatic
	}
	return s.manualCode(ctx, slots, box), ModeManualFallback
}

func (s *Service) tryAutomatic(ctx context.Context, box string) string {
	if s.auto == nil {
		return ""
	}
	code, err := s.auto.TryGenerate(ctx, box)
	if err != nil {
		s.log.Warn().Err(err).Str("box", box).Msg("generador automático falló, usando generación manual")
		return ""
	}
	return strings.TrimSpace(code)
}

// manualCode aplica la generación manual y, si algo falla, devuelve el código EST-AUTO.
func (s *Service) manualCode(ctx context.Context, slots repository.StorageSlotRepository, box string) string {
	code, err := nextManualCode(ctx, slots, box, s.now)
	if err != nil {
		fallback := storage.FallbackCode(s.now())
		s.log.Warn().Err(err).Str("box", box).Str("code", fallback).Msg("generación manual falló, usando código de respaldo")
		return fallback
	}
	return code
}

// nextManualCode: posición = ocupados activos + 1; si el código exacto ya existe en cualquier
// registro (incluidas órdenes entregadas) se desambigua con los últimos dígitos del timestamp.
func nextManualCode(ctx context.Context, slots repository.StorageSlotRepository, box string, now func() time.Time) (string, error) {
	letter, number := storage.ParseBoxLabel(box)
	n, err := slots.CountActiveByBox(ctx, box)
	if err != nil {
		return "", fmt.Errorf("contar ocupación de caja: %w", err)
	}
	candidate := storage.BuildCode(letter, number, n+1)
	exists, err := slots.CodeExists(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("verificar código existente: %w", err)
	}
	if exists {
		return storage.Disambiguate(candidate, now()), nil
	}
	return candidate, nil
}

// Validate revisa formato y disponibilidad de un código. Nunca devuelve error: los fallos de
// consulta se reportan como {valid:false, available:false}.
func (s *Service) Validate(ctx context.Context, code string) dto.ValidateCodeResponse {
	out := s.validate(ctx, code)
	if s.rec != nil {
		switch {
		case out.Valid && out.Available:
			s.rec.CodeValidated("available")
		case out.Valid:
			s.rec.CodeValidated("taken")
		case out.Message == ValidationErrorMessage:
			s.rec.CodeValidated("error")
		default:
			s.rec.CodeValidated("invalid")
		}
	}
	return out
}

func (s *Service) validate(ctx context.Context, code string) dto.ValidateCodeResponse {
	normalized := storage.NormalizeCode(code)
	if !storage.IsValidFormat(normalized) {
		return dto.ValidateCodeResponse{
			Valid:       false,
			Available:   false,
			Message:     "formato inválido: use EST<Letra>-F<Número>-P<Posición>, por ejemplo ESTA-F1-P1",
			Suggestions: storage.ExampleCodes(),
		}
	}
	occ, err := s.slots.FindActiveByCode(ctx, normalized)
	if err != nil {
		s.log.Warn().Err(err).Str("code", normalized).Msg("validación de código falló")
		return dto.ValidateCodeResponse{Valid: false, Available: false, Message: ValidationErrorMessage}
	}
	if occ != nil {
		return dto.ValidateCodeResponse{
			Valid:     true,
			Available: false,
			Message:   occupiedMessage(normalized, occ),
		}
	}
	return dto.ValidateCodeResponse{
		Valid:     true,
		Available: true,
		Message:   fmt.Sprintf("el código %s está disponible", normalized),
	}
}

func occupiedMessage(code string, occ *entity.SlotOccupant) string {
	return fmt.Sprintf("el código %s está ocupado por la orden %s de %s (estado: %s)",
		code, occ.OrderReference, occ.ClientDisplayName, occ.OrderStatus)
}

// ListByBox devuelve los códigos activos de la caja agrupados por código y el siguiente
// código sugerido (generación manual). Los errores de consulta se propagan.
func (s *Service) ListByBox(ctx context.Context, box string) (*dto.BoxLocationsResponse, error) {
	box = strings.TrimSpace(box)
	if box == "" {
		return nil, domain.ErrInvalidInput
	}
	occupants, err := s.slots.ListActiveByBox(ctx, box)
	if err != nil {
		return nil, err
	}
	return &dto.BoxLocationsResponse{
		Box:               box,
		ExistingCodes:     groupByCode(occupants),
		OccupiedCount:     len(occupants),
		SuggestedNextCode: s.manualCode(ctx, s.slots, box),
	}, nil
}

func groupByCode(occupants []entity.SlotOccupant) []dto.LocationCodeUsage {
	index := make(map[string]int)
	usages := make([]dto.LocationCodeUsage, 0)
	for _, o := range occupants {
		i, ok := index[o.LocationCode]
		if !ok {
			i = len(usages)
			index[o.LocationCode] = i
			usages = append(usages, dto.LocationCodeUsage{LocationCode: o.LocationCode, OrderReferences: []string{}})
		}
		u := &usages[i]
		u.OccupantCount++
		if !containsString(u.OrderReferences, o.OrderReference) {
			u.OrderReferences = append(u.OrderReferences, o.OrderReference)
		}
	}
	sort.Slice(usages, func(a, b int) bool { return usages[a].LocationCode < usages[b].LocationCode })
	return usages
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// AssignInput entrada para asignar ubicación a un ítem.
type AssignInput struct {
	ItemID       string
	Box          string
	Code         string // vacío = generar
	SpecialNotes string
	EmployeeID   string
}

// Assign escribe caja y código en el slot del ítem. Las asignaciones sobre la misma clave de
// caja (BoxPrefix) se serializan para que la posición generada sea consecutiva. Una vez decidido
// el código se toma además el lock del código (mutex en proceso + advisory lock en la tx) y se
// verifica contra los ocupantes activos de todas las cajas: si otro ítem activo lo tiene se
// devuelve ErrLocationTaken y no se escribe nada.
func (s *Service) Assign(ctx context.Context, in AssignInput) (*dto.StorageSlotResponse, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.Box = strings.TrimSpace(in.Box)
	if in.ItemID == "" || in.Box == "" {
		return nil, domain.ErrInvalidInput
	}
	manual := storage.NormalizeCode(in.Code)
	if manual != "" && !storage.IsValidFormat(manual) {
		return nil, domain.ErrInvalidLocationCode
	}

	boxKey := storage.BoxPrefix(in.Box)
	unlockBox, err := s.acquire(ctx, s.locks, boxKey)
	if err != nil {
		return nil, fmt.Errorf("esperar turno de la caja %s: %w", in.Box, domain.ErrConflict)
	}
	defer unlockBox()

	var (
		result     *entity.StorageSlot
		mode       string
		unlockCode func()
	)
	defer func() {
		if unlockCode != nil {
			unlockCode()
		}
	}()
	err = s.tx.RunStorage(ctx, func(slots repository.StorageSlotRepository) error {
		if err := slots.LockBox(ctx, boxKey); err != nil {
			return err
		}
		slot, err := slots.GetByItemID(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if slot == nil {
			return domain.ErrNotFound
		}
		if slot.OrderStatus.IsTerminal() {
			return domain.ErrConflict
		}

		code := manual
		mode = ModeOverride
		if code == "" {
			code, mode, err = s.codeForAssignment(ctx, slots, in.Box)
			if err != nil {
				return err
			}
		}

		release, err := s.acquire(ctx, s.codeLocks, code)
		if err != nil {
			return fmt.Errorf("esperar turno del código %s: %w", code, domain.ErrConflict)
		}
		unlockCode = release
		if err := slots.LockCode(ctx, code); err != nil {
			return err
		}
		occ, err := slots.FindActiveByCode(ctx, code)
		if err != nil {
			return err
		}
		if occ != nil && occ.ItemID != slot.ItemID {
			return domain.ErrLocationTaken
		}

		now := s.now()
		if err := slots.AssignLocation(ctx, slot.ItemID, in.Box, code, in.SpecialNotes, in.EmployeeID, now); err != nil {
			return err
		}
		slot.Box = in.Box
		slot.LocationCode = &code
		slot.SpecialNotes = in.SpecialNotes
		slot.AssignedBy = &in.EmployeeID
		slot.AssignedAt = &now
		result = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("item_id", result.ItemID).Str("box", in.Box).Str("code", *result.LocationCode).
		Str("mode", mode).Msg("ubicación asignada")
	if s.rec != nil {
		s.rec.LocationAssigned(mode)
	}
	out := toStorageSlotResponse(result)
	out.Mode = mode
	return out, nil
}

// acquire toma el mutex en proceso de key esperando como máximo lockTimeout.
func (s *Service) acquire(ctx context.Context, locks *boxLocks, key string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()
	return locks.Lock(lockCtx, key)
}

// codeForAssignment genera dentro de la transacción. A diferencia de Generate, los errores
// se propagan: no se persiste un código de respaldo.
func (s *Service) codeForAssignment(ctx context.Context, slots repository.StorageSlotRepository, box string) (string, string, error) {
	if storage.IsStrictBoxLabel(box) {
		if code := s.tryAutomatic(ctx, box); code != "" {
			occ, err := slots.FindActiveByCode(ctx, storage.NormalizeCode(code))
			if err != nil {
				return "", "", err
			}
			if occ == nil {
				return storage.NormalizeCode(code), ModeAutomatic, nil
			}
		}
		code, err := nextManualCode(ctx, slots, box, s.now)
		return code, ModeManualFallback, err
	}
	code, err := nextManualCode(ctx, slots, box, s.now)
	return code, ModeManual, err
}

// GetSlot devuelve el slot de un ítem.
func (s *Service) GetSlot(ctx context.Context, itemID string) (*dto.StorageSlotResponse, error) {
	slot, err := s.slots.GetByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, domain.ErrNotFound
	}
	return toStorageSlotResponse(slot), nil
}

// ActiveOccupants devuelve los ocupantes activos de la caja (para etiquetas).
func (s *Service) ActiveOccupants(ctx context.Context, box string) ([]entity.SlotOccupant, error) {
	box = strings.TrimSpace(box)
	if box == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.slots.ListActiveByBox(ctx, box)
}

func toStorageSlotResponse(s *entity.StorageSlot) *dto.StorageSlotResponse {
	return &dto.StorageSlotResponse{
		ItemID:       s.ItemID,
		OrderID:      s.OrderID,
		Box:          s.Box,
		LocationCode: s.LocationCode,
		SpecialNotes: s.SpecialNotes,
		AssignedBy:   s.AssignedBy,
		AssignedAt:   s.AssignedAt,
	}
}
