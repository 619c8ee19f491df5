package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bancacore/cuenta-ledger/internal/application/dto"
	"github.com/bancacore/cuenta-ledger/internal/application/usecase"
	"github.com/bancacore/cuenta-ledger/internal/domain/model"
	"github.com/bancacore/cuenta-ledger/internal/domain/valueobject"
)

const dateLayout = "2006-01-02"

// LedgerHandler implements the gRPC ledger service handler.
type LedgerHandler struct {
	UnimplementedLedgerServiceServer

	createAccount     *usecase.CreateAccount
	getAccount        *usecase.GetAccount
	listAccounts      *usecase.ListAccounts
	updateAccount     *usecase.UpdateAccount
	deactivateAccount *usecase.DeactivateAccount
	postMovement      *usecase.PostMovement
	getMovement       *usecase.GetMovement
	listMovements     *usecase.ListMovements
	statement         *usecase.GenerateStatement
}

// NewLedgerHandler creates a new gRPC ledger handler.
func NewLedgerHandler(
	createAccount *usecase.CreateAccount,
	getAccount *usecase.GetAccount,
	listAccounts *usecase.ListAccounts,
	updateAccount *usecase.UpdateAccount,
	deactivateAccount *usecase.DeactivateAccount,
	postMovement *usecase.PostMovement,
	getMovement *usecase.GetMovement,
	listMovements *usecase.ListMovements,
	statement *usecase.GenerateStatement,
) *LedgerHandler {
	return &LedgerHandler{
		createAccount:     createAccount,
		getAccount:        getAccount,
		listAccounts:      listAccounts,
		updateAccount:     updateAccount,
		deactivateAccount: deactivateAccount,
		postMovement:      postMovement,
		getMovement:       getMovement,
		listMovements:     listMovements,
		statement:         statement,
	}
}

// CreateAccountRequest represents the gRPC request for creating an account.
type CreateAccountRequest struct {
	CustomerID     string `json:"cliente_id"`
	AccountType    string `json:"tipo_cuenta"`
	OpeningBalance string `json:"saldo_inicial"`
}

// GetAccountRequest represents the gRPC request for getting an account.
type GetAccountRequest struct {
	AccountNumber string `json:"numero_cuenta"`
}

// ListAccountsRequest represents the gRPC request for listing accounts.
type ListAccountsRequest struct {
	CustomerID string `json:"cliente_id"`
	ActiveOnly bool   `json:"solo_activas"`
	Limit      int32  `json:"limit"`
	Offset     int32  `json:"offset"`
}

// UpdateAccountRequest represents the gRPC request for updating an account.
// Empty fields leave the account unchanged.
type UpdateAccountRequest struct {
	AccountNumber string `json:"numero_cuenta"`
	AccountType   string `json:"tipo_cuenta"`
	Active        *bool  `json:"estado"`
}

// DeactivateAccountRequest represents the gRPC request for deactivating an account.
type DeactivateAccountRequest struct {
	AccountNumber string `json:"numero_cuenta"`
}

// PostMovementRequest represents the gRPC request for posting a movement.
type PostMovementRequest struct {
	AccountNumber string `json:"numero_cuenta"`
	Kind          string `json:"tipo_movimiento"`
	Value         string `json:"valor"`
	Description   string `json:"descripcion"`
}

// GetMovementRequest represents the gRPC request for getting a movement.
type GetMovementRequest struct {
	MovementID string `json:"movimiento_id"`
}

// ListMovementsRequest represents the gRPC request for listing movements.
// From and To are RFC 3339 timestamps; either may be empty.
type ListMovementsRequest struct {
	AccountNumber string `json:"numero_cuenta"`
	From          string `json:"desde"`
	To            string `json:"hasta"`
	Limit         int32  `json:"limit"`
	Offset        int32  `json:"offset"`
}

// GetCustomerStatementRequest represents the gRPC request for a customer
// statement. From and To are calendar dates (YYYY-MM-DD).
type GetCustomerStatementRequest struct {
	CustomerID string `json:"cliente_id"`
	From       string `json:"fecha_inicio"`
	To         string `json:"fecha_fin"`
}

// GetAccountStatementRequest represents the gRPC request for a single
// account statement. From and To are calendar dates (YYYY-MM-DD).
type GetAccountStatementRequest struct {
	AccountNumber string `json:"numero_cuenta"`
	From          string `json:"fecha_inicio"`
	To            string `json:"fecha_fin"`
}

// AccountResponse represents the gRPC response for an account.
type AccountResponse struct {
	AccountNumber  string `json:"numeroCuenta"`
	AccountType    string `json:"tipoCuenta"`
	OpeningBalance string `json:"saldoInicial"`
	CurrentBalance string `json:"saldoActual"`
	Active         bool   `json:"estado"`
	CustomerID     string `json:"clienteId"`
	CreatedAt      string `json:"fechaCreacion"`
	UpdatedAt      string `json:"fechaActualizacion"`
}

// ListAccountsResponse represents the gRPC response for listing accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"cuentas"`
	Total    int32              `json:"total"`
}

// MovementResponse represents the gRPC response for a movement.
type MovementResponse struct {
	MovementID    string `json:"movimientoId"`
	AccountNumber string `json:"numeroCuenta"`
	Kind          string `json:"tipoMovimiento"`
	Value         string `json:"valor"`
	BalanceBefore string `json:"saldoAnterior"`
	BalanceAfter  string `json:"saldoDespues"`
	OccurredAt    string `json:"fecha"`
	Description   string `json:"descripcion"`
}

// ListMovementsResponse represents the gRPC response for listing movements.
type ListMovementsResponse struct {
	Movements []*MovementResponse `json:"movimientos"`
	Total     int32               `json:"total"`
}

// StatementResponse represents the gRPC response for a statement.
type StatementResponse struct {
	CustomerID     string              `json:"clienteId"`
	CustomerName   string              `json:"nombreCliente"`
	Identification string              `json:"identificacion"`
	From           string              `json:"fechaInicio"`
	To             string              `json:"fechaFin"`
	GeneratedAt    string              `json:"fechaGeneracion"`
	Accounts       []*StatementAccount `json:"cuentas"`
	TotalBalance   string              `json:"saldoTotalGeneral"`
	TotalAccounts  int32               `json:"totalCuentas"`
}

// StatementAccount represents one account inside a statement response.
type StatementAccount struct {
	AccountNumber    string               `json:"numeroCuenta"`
	AccountType      string               `json:"tipoCuenta"`
	OpeningBalance   string               `json:"saldoInicial"`
	CurrentBalance   string               `json:"saldoActual"`
	Active           bool                 `json:"estado"`
	TotalDeposits    string               `json:"totalDepositos"`
	TotalWithdrawals string               `json:"totalRetiros"`
	MovementCount    int32                `json:"totalMovimientos"`
	Movements        []*StatementMovement `json:"movimientos"`
}

// StatementMovement represents one movement line inside a statement response.
type StatementMovement struct {
	OccurredAt string `json:"fecha"`
	Kind       string `json:"tipoMovimiento"`
	Value      string `json:"valor"`
	Balance    string `json:"saldo"`
}

// CreateAccount handles the gRPC CreateAccount request.
func (h *LedgerHandler) CreateAccount(ctx context.Context, req *CreateAccountRequest) (*AccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	openingBalance, err := decimal.NewFromString(req.OpeningBalance)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid saldo_inicial: %v", err))
	}

	result, err := h.createAccount.Execute(ctx, dto.CreateAccountRequest{
		CustomerID:     req.CustomerID,
		AccountType:    req.AccountType,
		OpeningBalance: openingBalance,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return toAccountResponse(result), nil
}

// GetAccount handles the gRPC GetAccount request.
func (h *LedgerHandler) GetAccount(ctx context.Context, req *GetAccountRequest) (*AccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getAccount.Execute(ctx, req.AccountNumber)
	if err != nil {
		return nil, mapError(err)
	}
	return toAccountResponse(result), nil
}

// ListAccounts handles the gRPC ListAccounts request.
func (h *LedgerHandler) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.listAccounts.Execute(ctx, req.CustomerID, req.ActiveOnly, int(req.Limit), int(req.Offset))
	if err != nil {
		return nil, mapError(err)
	}

	accounts := make([]*AccountResponse, 0, len(result.Accounts))
	for _, a := range result.Accounts {
		accounts = append(accounts, toAccountResponse(a))
	}
	return &ListAccountsResponse{Accounts: accounts, Total: int32(result.Total)}, nil
}

// UpdateAccount handles the gRPC UpdateAccount request.
func (h *LedgerHandler) UpdateAccount(ctx context.Context, req *UpdateAccountRequest) (*AccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	update := dto.UpdateAccountRequest{
		AccountNumber: req.AccountNumber,
		Active:        req.Active,
	}
	if req.AccountType != "" {
		update.AccountType = &req.AccountType
	}

	result, err := h.updateAccount.Execute(ctx, update)
	if err != nil {
		return nil, mapError(err)
	}
	return toAccountResponse(result), nil
}

// DeactivateAccount handles the gRPC DeactivateAccount request.
func (h *LedgerHandler) DeactivateAccount(ctx context.Context, req *DeactivateAccountRequest) (*AccountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.deactivateAccount.Execute(ctx, req.AccountNumber)
	if err != nil {
		return nil, mapError(err)
	}
	return toAccountResponse(result), nil
}

// PostMovement handles the gRPC PostMovement request.
func (h *LedgerHandler) PostMovement(ctx context.Context, req *PostMovementRequest) (*MovementResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid valor: %v", err))
	}

	result, err := h.postMovement.Execute(ctx, dto.PostMovementRequest{
		AccountNumber: req.AccountNumber,
		Kind:          req.Kind,
		Value:         value,
		Description:   req.Description,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toMovementResponse(result), nil
}

// GetMovement handles the gRPC GetMovement request.
func (h *LedgerHandler) GetMovement(ctx context.Context, req *GetMovementRequest) (*MovementResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getMovement.Execute(ctx, req.MovementID)
	if err != nil {
		return nil, mapError(err)
	}
	return toMovementResponse(result), nil
}

// ListMovements handles the gRPC ListMovements request.
func (h *LedgerHandler) ListMovements(ctx context.Context, req *ListMovementsRequest) (*ListMovementsResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	var from, to time.Time
	var err error
	if req.From != "" {
		from, err = time.Parse(time.RFC3339, req.From)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid desde: %v", err))
		}
	}
	if req.To != "" {
		to, err = time.Parse(time.RFC3339, req.To)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid hasta: %v", err))
		}
	}

	result, err := h.listMovements.Execute(ctx, req.AccountNumber, from, to, int(req.Limit), int(req.Offset))
	if err != nil {
		return nil, mapError(err)
	}

	movements := make([]*MovementResponse, 0, len(result.Movements))
	for _, m := range result.Movements {
		movements = append(movements, toMovementResponse(m))
	}
	return &ListMovementsResponse{Movements: movements, Total: int32(result.Total)}, nil
}

// GetCustomerStatement handles the gRPC GetCustomerStatement request.
func (h *LedgerHandler) GetCustomerStatement(ctx context.Context, req *GetCustomerStatementRequest) (*StatementResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	result, err := h.statement.ExecuteForCustomer(ctx, req.CustomerID, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	return toStatementResponse(result), nil
}

// GetAccountStatement handles the gRPC GetAccountStatement request.
func (h *LedgerHandler) GetAccountStatement(ctx context.Context, req *GetAccountStatementRequest) (*StatementResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	from, to, err := parseDateRange(req.From, req.To)
	if err != nil {
		return nil, err
	}

	result, err := h.statement.ExecuteForAccount(ctx, req.AccountNumber, from, to)
	if err != nil {
		return nil, mapError(err)
	}
	return toStatementResponse(result), nil
}

func parseDateRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(dateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid fecha_inicio: %v", err))
	}
	to, err := time.Parse(dateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid fecha_fin: %v", err))
	}
	return from, to, nil
}

// mapError translates domain errors into gRPC status codes so each failure
// mode stays distinguishable for the caller.
func mapError(err error) error {
	switch {
	case errors.Is(err, model.ErrAccountNotFound),
		errors.Is(err, model.ErrMovementNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrInactiveAccount),
		errors.Is(err, model.ErrUnknownOrInactiveCustomer):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, model.ErrConcurrentModification):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, model.ErrUnsupportedMovementKind),
		errors.Is(err, model.ErrIllegalDateRange),
		errors.Is(err, valueobject.ErrInvalidValue):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrDependencyUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toAccountResponse(a dto.AccountResponse) *AccountResponse {
	return &AccountResponse{
		AccountNumber:  a.AccountNumber,
		AccountType:    a.AccountType,
		OpeningBalance: a.OpeningBalance.StringFixed(2),
		CurrentBalance: a.CurrentBalance.StringFixed(2),
		Active:         a.Active,
		CustomerID:     a.CustomerID,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

func toMovementResponse(m dto.MovementResponse) *MovementResponse {
	return &MovementResponse{
		MovementID:    m.MovementID,
		AccountNumber: m.AccountNumber,
		Kind:          m.Kind,
		Value:         m.Value.StringFixed(2),
		BalanceBefore: m.BalanceBefore.StringFixed(2),
		BalanceAfter:  m.BalanceAfter.StringFixed(2),
		OccurredAt:    m.OccurredAt.Format(time.RFC3339),
		Description:   m.Description,
	}
}

func toStatementResponse(s dto.Statement) *StatementResponse {
	accounts := make([]*StatementAccount, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		movements := make([]*StatementMovement, 0, len(a.Movements))
		for _, m := range a.Movements {
			movements = append(movements, &StatementMovement{
				OccurredAt: m.OccurredAt.Format(time.RFC3339),
				Kind:       m.Kind,
				Value:      m.Value.StringFixed(2),
				Balance:    m.Balance.StringFixed(2),
			})
		}
		accounts = append(accounts, &StatementAccount{
			AccountNumber:    a.AccountNumber,
			AccountType:      a.AccountType,
			OpeningBalance:   a.OpeningBalance.StringFixed(2),
			CurrentBalance:   a.CurrentBalance.StringFixed(2),
			Active:           a.Active,
			TotalDeposits:    a.TotalDeposits.StringFixed(2),
			TotalWithdrawals: a.TotalWithdrawals.StringFixed(2),
			MovementCount:    int32(a.MovementCount),
			Movements:        movements,
		})
	}

	return &StatementResponse{
		CustomerID:     s.CustomerID,
		CustomerName:   s.CustomerName,
		Identification: s.Identification,
		From:           s.From.Format(time.RFC3339),
		To:             s.To.Format(time.RFC3339),
		GeneratedAt:    s.GeneratedAt.Format(time.RFC3339),
		Accounts:       accounts,
		TotalBalance:   s.TotalBalance.StringFixed(2),
		TotalAccounts:  int32(s.TotalAccounts),
	}
}
