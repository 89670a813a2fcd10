package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kitokoh/hr-backoffice/internal/domain/employee"
	"github.com/kitokoh/hr-backoffice/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The tx manager just runs the function; the lifecycle
// logic under test is the same either way because repositories join the
// transaction through the context.

type fakeTxManager struct{}

func (fakeTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if !f.ids[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

func (f *fakeEmployeeRepo) Exists(_ context.Context, id string) (bool, error) {
	return f.ids[id], nil
}

type fakeLeaveTypeRepo struct {
	types  map[int64]leave.LeaveType
	nextID int64
}

func (f *fakeLeaveTypeRepo) Create(_ context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	for _, existing := range f.types {
		if existing.Name == lt.Name {
			return leave.LeaveType{}, leave.ErrLeaveTypeNameTaken
		}
	}
	f.nextID++
	lt.ID = f.nextID
	f.types[lt.ID] = lt
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id int64) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) List(_ context.Context, _, _ int) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) Update(_ context.Context, req leave.UpdateLeaveTypeRequest) error {
	lt, ok := f.types[req.ID]
	if !ok {
		return leave.ErrLeaveTypeNotFound
	}
	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.DefaultDaysEntitled != nil {
		lt.DefaultDaysEntitled = req.DefaultDaysEntitled
	}
	f.types[req.ID] = lt
	return nil
}

func (f *fakeLeaveTypeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.types[id]; !ok {
		return leave.ErrLeaveTypeNotFound
	}
	delete(f.types, id)
	return nil
}

type balanceKey struct {
	employeeID  string
	leaveTypeID int64
	year        int
}

type fakeBalanceRepo struct {
	balances map[int64]leave.LeaveBalance
	nextID   int64
}

func (f *fakeBalanceRepo) Create(_ context.Context, b leave.LeaveBalance) (leave.LeaveBalance, error) {
	for _, existing := range f.balances {
		if existing.EmployeeID == b.EmployeeID && existing.LeaveTypeID == b.LeaveTypeID && existing.Year == b.Year {
			return leave.LeaveBalance{}, leave.ErrBalanceExists
		}
	}
	f.nextID++
	b.ID = f.nextID
	f.balances[b.ID] = b
	return b, nil
}

func (f *fakeBalanceRepo) GetByID(_ context.Context, id int64) (leave.LeaveBalance, error) {
	b, ok := f.balances[id]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) findKey(key balanceKey) (leave.LeaveBalance, bool) {
	for _, b := range f.balances {
		if b.EmployeeID == key.employeeID && b.LeaveTypeID == key.leaveTypeID && b.Year == key.year {
			return b, true
		}
	}
	return leave.LeaveBalance{}, false
}

func (f *fakeBalanceRepo) GetForKey(_ context.Context, employeeID string, leaveTypeID int64, year int) (leave.LeaveBalance, error) {
	b, ok := f.findKey(balanceKey{employeeID, leaveTypeID, year})
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return b, nil
}

func (f *fakeBalanceRepo) GetForKeyForUpdate(ctx context.Context, employeeID string, leaveTypeID int64, year int) (leave.LeaveBalance, error) {
	return f.GetForKey(ctx, employeeID, leaveTypeID, year)
}

func (f *fakeBalanceRepo) ListByEmployee(_ context.Context, employeeID string, year *int) ([]leave.LeaveBalance, error) {
	out := make([]leave.LeaveBalance, 0)
	for _, b := range f.balances {
		if b.EmployeeID != employeeID {
			continue
		}
		if year != nil && b.Year != *year {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBalanceRepo) Update(_ context.Context, req leave.UpdateLeaveBalanceRequest) error {
	b, ok := f.balances[req.ID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if req.EntitledDays != nil {
		b.EntitledDays = *req.EntitledDays
	}
	if req.UsedDays != nil {
		b.UsedDays = *req.UsedDays
	}
	f.balances[req.ID] = b
	return nil
}

func (f *fakeBalanceRepo) IncrementUsed(_ context.Context, id int64, days float64) error {
	b, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.UsedDays += days
	f.balances[id] = b
	return nil
}

func (f *fakeBalanceRepo) DecrementUsed(_ context.Context, id int64, days float64) error {
	b, ok := f.balances[id]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	b.UsedDays -= days
	if b.UsedDays < 0 {
		b.UsedDays = 0
	}
	f.balances[id] = b
	return nil
}

type fakeRequestRepo struct {
	requests map[int64]leave.LeaveRequest
	nextID   int64
}

func (f *fakeRequestRepo) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.nextID++
	r.ID = f.nextID
	r.RequestDate = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return r, nil
}

func (f *fakeRequestRepo) GetByIDForUpdate(ctx context.Context, id int64) (leave.LeaveRequest, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string, _, _ int) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatus(_ context.Context, status leave.Status, _, _ int) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, r := range f.requests {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(_ context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	out := make([]leave.LeaveRequest, 0)
	for _, r := range f.requests {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, id int64, status leave.Status, approvedBy string, processedAt time.Time, comments *string) error {
	r, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	r.Status = status
	r.ApprovedByID = &approvedBy
	r.ProcessedDate = &processedAt
	if comments != nil {
		r.Comments = comments
	}
	f.requests[id] = r
	return nil
}

type fixture struct {
	service  leave.LeaveService
	types    *fakeLeaveTypeRepo
	balances *fakeBalanceRepo
	requests *fakeRequestRepo
}

const (
	testEmployeeID = "7b8ad292-1c83-4a4c-9a27-7e1a67f2e6a1"
	otherEmployee  = "2f3f1d24-9a6d-4a44-b6a4-3f0f8f8a1c2d"
	hrUserID       = "user-hr"
)

var hrActor = leave.Actor{UserID: hrUserID, Elevated: true}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	types := &fakeLeaveTypeRepo{types: map[int64]leave.LeaveType{
		1: {ID: 1, Name: "Annual Leave"},
	}, nextID: 1}
	balances := &fakeBalanceRepo{balances: map[int64]leave.LeaveBalance{}}
	requests := &fakeRequestRepo{requests: map[int64]leave.LeaveRequest{}}
	employees := &fakeEmployeeRepo{ids: map[string]bool{testEmployeeID: true, otherEmployee: true}}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := NewLeaveService(types, balances, requests, employees, fakeTxManager{}, logger)

	return &fixture{service: service, types: types, balances: balances, requests: requests}
}

func (f *fixture) seedBalance(t *testing.T, employeeID string, year int, entitled, used float64) int64 {
	t.Helper()
	b, err := f.balances.Create(context.Background(), leave.LeaveBalance{
		EmployeeID:   employeeID,
		LeaveTypeID:  1,
		Year:         year,
		EntitledDays: entitled,
		UsedDays:     used,
	})
	require.NoError(t, err)
	return b.ID
}

func (f *fixture) seedRequest(t *testing.T, employeeID string, status leave.Status, start, end string, numDays float64) int64 {
	t.Helper()
	startDate, _ := time.Parse("2006-01-02", start)
	endDate, _ := time.Parse("2006-01-02", end)
	r, err := f.requests.Create(context.Background(), leave.LeaveRequest{
		EmployeeID:  employeeID,
		LeaveTypeID: 1,
		Status:      status,
		StartDate:   startDate,
		EndDate:     endDate,
		NumDays:     numDays,
	})
	require.NoError(t, err)
	return r.ID
}

func TestSubmitRequest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.SubmitRequest(ctx, testEmployeeID, leave.CreateLeaveRequestRequest{
		LeaveTypeID: 1,
		StartDate:   "2025-06-02",
		EndDate:     "2025-06-06",
		NumDays:     5,
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, testEmployeeID, created.EmployeeID)
	assert.Equal(t, float64(5), created.NumDays)
	assert.False(t, created.RequestDate.IsZero())
	assert.Nil(t, created.ApprovedByID)
}

func TestSubmitRequest_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SubmitRequest(context.Background(), "b2a1e7c0-0000-4000-8000-000000000000", leave.CreateLeaveRequestRequest{
		LeaveTypeID: 1,
		StartDate:   "2025-06-02",
		EndDate:     "2025-06-06",
		NumDays:     5,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSubmitRequest_UnknownLeaveType(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.SubmitRequest(context.Background(), testEmployeeID, leave.CreateLeaveRequestRequest{
		LeaveTypeID: 99,
		StartDate:   "2025-06-02",
		EndDate:     "2025-06-06",
		NumDays:     5,
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestTransition_ApproveConsumesBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 0)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedByID)
	assert.Equal(t, hrUserID, *updated.ApprovedByID)
	assert.NotNil(t, updated.ProcessedDate)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), balance.UsedDays)
}

func TestTransition_CancelAfterApproveReturnsDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 0)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	_, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)

	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusCancelled, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, updated.Status)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), balance.UsedDays)
}

func TestTransition_RejectAfterApproveReturnsDays(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 3)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusApproved, "2025-06-02", "2025-06-06", 5)
	// Balance already reflects an earlier consumption of 3 other days
	// plus nothing from this request yet; simulate the approved state.
	require.NoError(t, f.balances.IncrementUsed(ctx, balanceID, 5))

	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, updated.Status)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(3), balance.UsedDays)
}

func TestTransition_RejectPendingLeavesBalanceUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 4)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusRejected, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, updated.Status)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(4), balance.UsedDays)
}

func TestTransition_SameStatusIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 0)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	_, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)

	// Re-approving must not consume the days twice.
	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, updated.Status)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(5), balance.UsedDays)
}

func TestTransition_InvalidMoves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		from   leave.Status
		target leave.Status
	}{
		{"rejected to approved", leave.StatusRejected, leave.StatusApproved},
		{"cancelled to approved", leave.StatusCancelled, leave.StatusApproved},
		{"approved to pending", leave.StatusApproved, leave.StatusPending},
		{"rejected to cancelled", leave.StatusRejected, leave.StatusCancelled},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			requestID := f.seedRequest(t, testEmployeeID, c.from, "2025-06-02", "2025-06-06", 5)
			_, err := f.service.Transition(ctx, requestID, hrActor, c.target, nil)
			assert.ErrorIs(t, err, leave.ErrInvalidTransition)
		})
	}
}

func TestTransition_MissingBalanceStillUpdatesStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, updated.Status)
	assert.Empty(t, f.balances.balances)
}

func TestTransition_DecrementClampsAtZero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// used_days is lower than the request's num_days; reversal must not
	// drive it negative.
	balanceID := f.seedBalance(t, testEmployeeID, 2025, 25, 2)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusApproved, "2025-06-02", "2025-06-06", 5)

	_, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusCancelled, nil)
	require.NoError(t, err)

	balance, err := f.balances.GetByID(ctx, balanceID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), balance.UsedDays)
}

func TestTransition_CrossYearRequestUsesStartYearBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	startYearBalance := f.seedBalance(t, testEmployeeID, 2025, 25, 0)
	endYearBalance := f.seedBalance(t, testEmployeeID, 2026, 25, 0)
	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-12-29", "2026-01-02", 5)

	_, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, nil)
	require.NoError(t, err)

	b2025, err := f.balances.GetByID(ctx, startYearBalance)
	require.NoError(t, err)
	assert.Equal(t, float64(5), b2025.UsedDays)

	b2026, err := f.balances.GetByID(ctx, endYearBalance)
	require.NoError(t, err)
	assert.Equal(t, float64(0), b2026.UsedDays)
}

func TestTransition_SelfCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	selfActor := leave.Actor{UserID: "user-emp", EmployeeID: testEmployeeID, Elevated: false}

	t.Run("own pending request", func(t *testing.T) {
		requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)
		updated, err := f.service.Transition(ctx, requestID, selfActor, leave.StatusCancelled, nil)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, updated.Status)
	})

	t.Run("cannot approve own request", func(t *testing.T) {
		requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)
		_, err := f.service.Transition(ctx, requestID, selfActor, leave.StatusApproved, nil)
		assert.ErrorIs(t, err, leave.ErrForbiddenTransition)
	})

	t.Run("cannot cancel another employee's request", func(t *testing.T) {
		requestID := f.seedRequest(t, otherEmployee, leave.StatusPending, "2025-06-02", "2025-06-06", 5)
		_, err := f.service.Transition(ctx, requestID, selfActor, leave.StatusCancelled, nil)
		assert.ErrorIs(t, err, leave.ErrForbiddenTransition)
	})

	t.Run("cannot cancel once approved", func(t *testing.T) {
		requestID := f.seedRequest(t, testEmployeeID, leave.StatusApproved, "2025-06-02", "2025-06-06", 5)
		_, err := f.service.Transition(ctx, requestID, selfActor, leave.StatusCancelled, nil)
		assert.ErrorIs(t, err, leave.ErrForbiddenTransition)
	})
}

func TestTransition_RequestNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Transition(context.Background(), 999, hrActor, leave.StatusApproved, nil)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestTransition_CommentsRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	requestID := f.seedRequest(t, testEmployeeID, leave.StatusPending, "2025-06-02", "2025-06-06", 5)

	comments := "enjoy your holiday"
	updated, err := f.service.Transition(ctx, requestID, hrActor, leave.StatusApproved, &comments)
	require.NoError(t, err)
	require.NotNil(t, updated.Comments)
	assert.Equal(t, comments, *updated.Comments)
}

func TestCreateBalance_DuplicateKey(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := leave.CreateLeaveBalanceRequest{
		EmployeeID:   testEmployeeID,
		LeaveTypeID:  1,
		Year:         2025,
		EntitledDays: 25,
	}

	_, err := f.service.CreateBalance(ctx, req)
	require.NoError(t, err)

	_, err = f.service.CreateBalance(ctx, req)
	assert.ErrorIs(t, err, leave.ErrBalanceExists)
}

func TestCreateBalance_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateBalance(context.Background(), leave.CreateLeaveBalanceRequest{
		EmployeeID:   "b2a1e7c0-0000-4000-8000-000000000000",
		LeaveTypeID:  1,
		Year:         2025,
		EntitledDays: 25,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListRequests_RequiresFilter(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.ListRequests(context.Background(), leave.RequestFilter{})
	assert.Error(t, err)
}
