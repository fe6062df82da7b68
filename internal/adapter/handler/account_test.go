package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlejoJamC/banking-account/internal/adapter/middleware"
	"github.com/AlejoJamC/banking-account/internal/core/domain"
	"github.com/AlejoJamC/banking-account/internal/core/service"
)

// fakeStore backs the handlers with in-memory state. Same contract as the
// Postgres store: detached loads, versioned saves, rollback on error.
type fakeStore struct {
	users        map[uuid.UUID]domain.User
	accounts     map[uuid.UUID]domain.Account
	cards        map[uuid.UUID]domain.Card
	transactions []domain.Transaction
	conflictOn   map[uuid.UUID]bool
}

var _ service.TxStore = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]domain.User),
		accounts:   make(map[uuid.UUID]domain.Account),
		cards:      make(map[uuid.UUID]domain.Card),
		conflictOn: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStore) GetAccount(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, domain.AccountNotFoundError{AccountID: id}
	}
	copy := a
	return &copy, nil
}

func (f *fakeStore) SaveAccount(_ context.Context, a *domain.Account) error {
	if f.conflictOn[a.ID] {
		return domain.VersionConflictError{AccountID: a.ID}
	}
	stored, ok := f.accounts[a.ID]
	if !ok {
		return domain.AccountNotFoundError{AccountID: a.ID}
	}
	if stored.Version != a.Version {
		return domain.VersionConflictError{AccountID: a.ID}
	}
	a.Version++
	f.accounts[a.ID] = *a
	return nil
}

func (f *fakeStore) GetCard(_ context.Context, id uuid.UUID) (*domain.Card, error) {
	c, ok := f.cards[id]
	if !ok {
		return nil, domain.CardNotFoundError{CardID: id}
	}
	copy := c
	return &copy, nil
}

func (f *fakeStore) SaveTransaction(_ context.Context, tx *domain.Transaction) error {
	f.transactions = append(f.transactions, *tx)
	return nil
}

func (f *fakeStore) EnqueueWebhook(context.Context, string, []byte) error { return nil }

func (f *fakeStore) RunInTx(_ context.Context, fn func(service.Store) error) error {
	snapshot := make(map[uuid.UUID]domain.Account, len(f.accounts))
	for id, a := range f.accounts {
		snapshot[id] = a
	}
	snapshotTxs := len(f.transactions)
	if err := fn(f); err != nil {
		f.accounts = snapshot
		f.transactions = f.transactions[:snapshotTxs]
		return err
	}
	return nil
}

func (f *fakeStore) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeStore) ListAccountsByUser(_ context.Context, userID uuid.UUID) ([]*domain.Account, error) {
	var out []*domain.Account
	for _, a := range f.accounts {
		if a.UserID == userID && a.Status == domain.AccountActive {
			copy := a
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountNumber < out[j].AccountNumber })
	return out, nil
}

func (f *fakeStore) ListAccounts(_ context.Context, limit, offset int) ([]*domain.Account, int64, error) {
	var all []*domain.Account
	for _, a := range f.accounts {
		copy := a
		all = append(all, &copy)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AccountNumber < all[j].AccountNumber })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeStore) ListTransactions(_ context.Context, accountID uuid.UUID, limit int) ([]*domain.Transaction, error) {
	var out []*domain.Transaction
	for i := range f.transactions {
		if f.transactions[i].AccountID == accountID {
			out = append(out, &f.transactions[i])
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		copy := u
		out = append(out, &copy)
	}
	return out, nil
}

func (f *fakeStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copy := u
			return &copy, nil
		}
	}
	return nil, domain.UserNotFoundError{Email: email}
}

func newTestApp(store *fakeStore) *fiber.App {
	accountHandler := &AccountHandler{
		Withdrawals: service.NewWithdrawalService(store),
		Transfers:   service.NewTransferService(store, ""),
		Accounts:    service.NewAccountService(store),
	}
	userHandler := &UserHandler{Users: service.NewUserService(store)}
	adminHandler := &AdminHandler{Accounts: service.NewAccountService(store)}

	app := fiber.New()
	api := app.Group("/api")
	api.Get("/accounts", middleware.RequireUser(), accountHandler.GetBalances)
	api.Post("/accounts/:id/withdraw", accountHandler.Withdraw)
	api.Post("/accounts/:id/transfer", accountHandler.Transfer)
	api.Get("/accounts/:id/transactions", accountHandler.GetHistory)
	api.Get("/users", userHandler.GetUsers)
	api.Get("/users/search", userHandler.SearchUsers)
	app.Get("/admin/accounts", adminHandler.GetAllAccounts)
	return app
}

func seedFixture(store *fakeStore, balance string, cardType domain.CardType) (*domain.Account, *domain.Card) {
	user := domain.NewUser(fmt.Sprintf("%s@example.com", uuid.NewString()), "Test User", uuid.NewString())
	store.users[user.ID] = *user

	account := domain.NewAccount(user.ID, "NL91BANK"+uuid.NewString()[:10], "EUR")
	account.Balance = domain.NewAmount(balance)
	store.accounts[account.ID] = *account

	expiry := domain.Expiry{Year: time.Now().Year() + 2, Month: time.December}
	card := domain.NewCard(account.ID, cardType, "4111111111111111", expiry, "")
	store.cards[card.ID] = *card
	return account, card
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestWithdrawEndpoint(t *testing.T) {
	store := newFakeStore()
	account, card := seedFixture(store, "1000.00", domain.CardCredit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+account.ID.String()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    card.ID.String(),
		"amount":     "100.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		TransactionID uuid.UUID       `json:"transaction_id"`
		Fee           decimal.Decimal `json:"fee"`
		BalanceAfter  decimal.Decimal `json:"balance_after"`
	}
	decodeBody(t, resp, &result)
	assert.NotEqual(t, uuid.Nil, result.TransactionID)
	assert.True(t, result.Fee.Equal(domain.NewAmount("1.00")))
	assert.True(t, result.BalanceAfter.Equal(domain.NewAmount("899.00")))
}

func TestWithdrawEndpointPathBodyMismatch(t *testing.T) {
	store := newFakeStore()
	account, card := seedFixture(store, "1000.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+uuid.NewString()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    card.ID.String(),
		"amount":     "100.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWithdrawEndpointCardNotFound(t *testing.T) {
	store := newFakeStore()
	account, _ := seedFixture(store, "1000.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+account.ID.String()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    uuid.NewString(),
		"amount":     "100.00",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWithdrawEndpointInsufficientFunds(t *testing.T) {
	store := newFakeStore()
	account, card := seedFixture(store, "50.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+account.ID.String()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    card.ID.String(),
		"amount":     "80.00",
	})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var body struct {
		Available decimal.Decimal `json:"available"`
		Requested decimal.Decimal `json:"requested"`
		Shortfall decimal.Decimal `json:"shortfall"`
	}
	decodeBody(t, resp, &body)
	assert.True(t, body.Available.Equal(domain.NewAmount("50.00")))
	assert.True(t, body.Requested.Equal(domain.NewAmount("80.00")))
	assert.True(t, body.Shortfall.Equal(domain.NewAmount("30.00")))
}

func TestWithdrawEndpointVersionConflict(t *testing.T) {
	store := newFakeStore()
	account, card := seedFixture(store, "1000.00", domain.CardDebit)
	store.conflictOn[account.ID] = true
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+account.ID.String()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    card.ID.String(),
		"amount":     "100.00",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestTransferEndpoint(t *testing.T) {
	store := newFakeStore()
	source, card := seedFixture(store, "1000.00", domain.CardDebit)
	destination, _ := seedFixture(store, "500.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+source.ID.String()+"/transfer", fiber.Map{
		"from_account_id": source.ID.String(),
		"to_account_id":   destination.ID.String(),
		"card_id":         card.ID.String(),
		"amount":          "100.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		TransferTransactionID uuid.UUID       `json:"transfer_transaction_id"`
		DepositTransactionID  uuid.UUID       `json:"deposit_transaction_id"`
		FromBalanceAfter      decimal.Decimal `json:"from_balance_after"`
		ToBalanceAfter        decimal.Decimal `json:"to_balance_after"`
	}
	decodeBody(t, resp, &result)
	assert.NotEqual(t, uuid.Nil, result.TransferTransactionID)
	assert.NotEqual(t, uuid.Nil, result.DepositTransactionID)
	assert.True(t, result.FromBalanceAfter.Equal(domain.NewAmount("900.00")))
	assert.True(t, result.ToBalanceAfter.Equal(domain.NewAmount("600.00")))
}

func TestTransferEndpointSelfTransfer(t *testing.T) {
	store := newFakeStore()
	source, card := seedFixture(store, "1000.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+source.ID.String()+"/transfer", fiber.Map{
		"from_account_id": source.ID.String(),
		"to_account_id":   source.ID.String(),
		"card_id":         card.ID.String(),
		"amount":          "100.00",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransferEndpointInactiveDestination(t *testing.T) {
	store := newFakeStore()
	source, card := seedFixture(store, "1000.00", domain.CardDebit)
	destination, _ := seedFixture(store, "500.00", domain.CardDebit)
	suspended := store.accounts[destination.ID]
	suspended.Status = domain.AccountSuspended
	store.accounts[destination.ID] = suspended
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+source.ID.String()+"/transfer", fiber.Map{
		"from_account_id": source.ID.String(),
		"to_account_id":   destination.ID.String(),
		"card_id":         card.ID.String(),
		"amount":          "100.00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetBalancesRequiresUserHeader(t *testing.T) {
	store := newFakeStore()
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("X-User-Id", "not-a-uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetBalancesEndpoint(t *testing.T) {
	store := newFakeStore()
	account, _ := seedFixture(store, "750.00", domain.CardDebit)
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("X-User-Id", account.UserID.String())
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Accounts []struct {
			AccountID uuid.UUID       `json:"account_id"`
			Balance   decimal.Decimal `json:"balance"`
		} `json:"accounts"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Accounts, 1)
	assert.Equal(t, account.ID, body.Accounts[0].AccountID)
	assert.True(t, body.Accounts[0].Balance.Equal(domain.NewAmount("750.00")))
}

func TestGetHistoryEndpoint(t *testing.T) {
	store := newFakeStore()
	account, card := seedFixture(store, "1000.00", domain.CardDebit)
	app := newTestApp(store)

	resp := postJSON(t, app, "/api/accounts/"+account.ID.String()+"/withdraw", fiber.Map{
		"account_id": account.ID.String(),
		"card_id":    card.ID.String(),
		"amount":     "100.00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/accounts/"+account.ID.String()+"/transactions", nil)
	historyResp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, historyResp.StatusCode)

	var body struct {
		Transactions []struct {
			Type   string          `json:"type"`
			Amount decimal.Decimal `json:"amount"`
		} `json:"transactions"`
	}
	decodeBody(t, historyResp, &body)
	require.Len(t, body.Transactions, 1)
	assert.Equal(t, "WITHDRAWAL", body.Transactions[0].Type)
	assert.True(t, body.Transactions[0].Amount.Equal(domain.NewAmount("100.00")))
}

func TestSearchUsersEndpoint(t *testing.T) {
	store := newFakeStore()
	user := domain.NewUser("mara.jansen@example.com", "Mara Jansen", "493817265")
	store.users[user.ID] = *user
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/api/users/search?email=MARA.JANSEN@example.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found domain.User
	decodeBody(t, resp, &found)
	assert.Equal(t, user.ID, found.ID)

	req = httptest.NewRequest(http.MethodGet, "/api/users/search", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/users/search?email=nobody@example.com", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminAccountsEndpoint(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 3; i++ {
		seedFixture(store, "100.00", domain.CardDebit)
	}
	app := newTestApp(store)

	req := httptest.NewRequest(http.MethodGet, "/admin/accounts?page=0&size=2", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Accounts []json.RawMessage `json:"accounts"`
		Total    int64             `json:"total"`
	}
	decodeBody(t, resp, &body)
	assert.Len(t, body.Accounts, 2)
	assert.EqualValues(t, 3, body.Total)

	req = httptest.NewRequest(http.MethodGet, "/admin/accounts?page=-1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
