package request_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/auth"
	"github.com/opsrequests/request-management/internal/core/events"
	"github.com/opsrequests/request-management/internal/request"
	"github.com/opsrequests/request-management/internal/requesttype"
	"github.com/opsrequests/request-management/internal/user"
)

func TestRequest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Request Module Suite")
}

// Mock repository with the same transactional semantics as the real one:
// Transition only applies when the stored status matches the expected one,
// and the audit event (plus comment) lands together with the status change
// or not at all.
type mockRequestRepository struct {
	requests    map[int64]*request.Request
	comments    []*request.Comment
	auditEvents []*request.AuditEvent
	nextID      int64
}

func newMockRequestRepository() *mockRequestRepository {
	return &mockRequestRepository{
		requests: make(map[int64]*request.Request),
		nextID:   1,
	}
}

func (m *mockRequestRepository) Create(req *request.Request, event *request.AuditEvent) error {
	req.ID = m.nextID
	m.nextID++
	stored := *req
	m.requests[req.ID] = &stored

	event.RequestID = req.ID
	m.auditEvents = append(m.auditEvents, event)
	return nil
}

func (m *mockRequestRepository) GetByID(id int64) (*request.Request, error) {
	req, exists := m.requests[id]
	if !exists {
		return nil, internal.ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *mockRequestRepository) FindByRequester(requesterID int64) ([]*request.Request, error) {
	var out []*request.Request
	for _, req := range m.requests {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) FindByManager(managerID int64) ([]*request.Request, error) {
	var out []*request.Request
	for _, req := range m.requests {
		if req.ManagerID != nil && *req.ManagerID == managerID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) FindByManagerAndStatus(managerID int64, status request.Status) ([]*request.Request, error) {
	var out []*request.Request
	for _, req := range m.requests {
		if req.ManagerID != nil && *req.ManagerID == managerID && req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) FindAll() ([]*request.Request, error) {
	var out []*request.Request
	for _, req := range m.requests {
		out = append(out, req)
	}
	return out, nil
}

func (m *mockRequestRepository) UpdateEditableFields(req *request.Request) error {
	stored, exists := m.requests[req.ID]
	if !exists {
		return internal.ErrRequestNotFound
	}
	if stored.Status != request.StatusSubmitted {
		return internal.NewCannotModifyError("update", string(stored.Status))
	}
	stored.TypeID = req.TypeID
	stored.Title = req.Title
	stored.Description = req.Description
	stored.Amount = req.Amount
	stored.Priority = req.Priority
	stored.UpdatedAt = time.Now()
	return nil
}

func (m *mockRequestRepository) Transition(id int64, from, to request.Status, event *request.AuditEvent, comment *request.Comment) error {
	stored, exists := m.requests[id]
	if !exists {
		return internal.ErrRequestNotFound
	}
	if stored.Status != from {
		return internal.NewInvalidStateError(string(stored.Status), string(to))
	}
	stored.Status = to
	stored.UpdatedAt = time.Now()
	m.auditEvents = append(m.auditEvents, event)
	if comment != nil {
		comment.ID = int64(len(m.comments) + 1)
		m.comments = append(m.comments, comment)
	}
	return nil
}

func (m *mockRequestRepository) AddComment(comment *request.Comment, event *request.AuditEvent) error {
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	m.auditEvents = append(m.auditEvents, event)
	return nil
}

func (m *mockRequestRepository) CommentsForRequest(requestID int64) ([]*request.Comment, error) {
	var out []*request.Comment
	for _, c := range m.comments {
		if c.RequestID == requestID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) AuditEventsForRequest(requestID int64) ([]*request.AuditEvent, error) {
	var out []*request.AuditEvent
	for _, e := range m.auditEvents {
		if e.RequestID == requestID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockTypeReader struct {
	types map[int64]*requesttype.RequestType
}

func (m *mockTypeReader) GetByID(id int64) (*requesttype.RequestType, error) {
	t, exists := m.types[id]
	if !exists {
		return nil, internal.ErrRequestTypeNotFound
	}
	return t, nil
}

type mockUserReader struct {
	users map[int64]*user.User
}

func (m *mockUserReader) GetByID(userID int64) (*user.User, error) {
	u, exists := m.users[userID]
	if !exists {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

var _ = Describe("RequestService", func() {
	var (
		svc      *request.Service
		mockRepo *mockRequestRepository
		bus      *recordingBus

		managerID int64 = 10
		otherMgr  int64 = 11

		employee     *auth.User
		manager      *auth.User
		otherManager *auth.User
		admin        *auth.User
	)

	BeforeEach(func() {
		mockRepo = newMockRequestRepository()
		bus = &recordingBus{}

		typeReader := &mockTypeReader{types: map[int64]*requesttype.RequestType{
			1: {ID: 1, Code: "HARDWARE", Name: "Hardware purchase", IsActive: true},
			2: {ID: 2, Code: "ACCESS", Name: "Access grant", IsActive: true},
		}}
		userReader := &mockUserReader{users: map[int64]*user.User{
			1:         {ID: 1, Email: "emp@company.test", Role: auth.RoleEmployee, ManagerID: &managerID, IsActive: true},
			managerID: {ID: managerID, Email: "mgr@company.test", Role: auth.RoleManager, IsActive: true},
			otherMgr:  {ID: otherMgr, Email: "mgr2@company.test", Role: auth.RoleManager, IsActive: true},
			99:        {ID: 99, Email: "admin@company.test", Role: auth.RoleAdmin, IsActive: true},
		}}

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = request.NewService(mockRepo, typeReader, userReader, bus, lg)

		employee = &auth.User{ID: 1, Email: "emp@company.test", Role: auth.RoleEmployee, ManagerID: &managerID, IsActive: true}
		manager = &auth.User{ID: managerID, Email: "mgr@company.test", Role: auth.RoleManager, IsActive: true}
		otherManager = &auth.User{ID: otherMgr, Email: "mgr2@company.test", Role: auth.RoleManager, IsActive: true}
		admin = &auth.User{ID: 99, Email: "admin@company.test", Role: auth.RoleAdmin, IsActive: true}
	})

	createRequest := func(actor *auth.User) *request.Response {
		resp, err := svc.CreateRequest(actor, request.CreateRequestDTO{
			TypeID:   1,
			Title:    "Replace broken laptop",
			Priority: "MEDIUM",
		})
		Expect(err).ToNot(HaveOccurred())
		return resp
	}

	Describe("CreateRequest", func() {
		It("creates the request in SUBMITTED status with a CREATED audit event", func() {
			resp := createRequest(employee)

			Expect(resp.Status).To(Equal(request.StatusSubmitted))
			Expect(resp.Requester.ID).To(Equal(employee.ID))

			trail, err := mockRepo.AuditEventsForRequest(resp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(trail).To(HaveLen(1))
			Expect(trail[0].EventType).To(Equal(request.EventCreated))
			Expect(trail[0].FromStatus).To(BeNil())
			Expect(*trail[0].ToStatus).To(Equal(string(request.StatusSubmitted)))
		})

		It("snapshots the requester's manager onto the request", func() {
			resp := createRequest(employee)

			stored, err := mockRepo.GetByID(resp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.ManagerID).ToNot(BeNil())
			Expect(*stored.ManagerID).To(Equal(managerID))
		})

		It("rejects an unknown request type", func() {
			_, err := svc.CreateRequest(employee, request.CreateRequestDTO{
				TypeID:   42,
				Title:    "Something",
				Priority: "LOW",
			})
			Expect(err).To(Equal(internal.ErrRequestTypeNotFound))
		})

		It("rejects a missing title", func() {
			_, err := svc.CreateRequest(employee, request.CreateRequestDTO{
				TypeID:   1,
				Priority: "LOW",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("publishes a request.created domain event", func() {
			createRequest(employee)
			Expect(bus.published).To(HaveLen(1))
			Expect(bus.published[0].EventType()).To(Equal(request.EventTypeRequestCreated))
		})
	})

	Describe("ApproveRequest", func() {
		It("lets the assigned manager approve with a comment", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "Budget confirmed"})
			Expect(err).ToNot(HaveOccurred())

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusApproved))
		})

		It("writes exactly one audit event and one comment for the decision", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "Budget confirmed"})
			Expect(err).ToNot(HaveOccurred())

			trail, _ := mockRepo.AuditEventsForRequest(resp.ID)
			Expect(trail).To(HaveLen(2)) // CREATED then APPROVED, nothing else
			Expect(trail[1].EventType).To(Equal(request.EventApproved))
			Expect(*trail[1].FromStatus).To(Equal(string(request.StatusSubmitted)))
			Expect(*trail[1].ToStatus).To(Equal(string(request.StatusApproved)))
			Expect(*trail[1].Note).To(Equal("Budget confirmed"))

			comments, _ := mockRepo.CommentsForRequest(resp.ID)
			Expect(comments).To(HaveLen(1))
			Expect(comments[0].Text).To(Equal("Budget confirmed"))
			Expect(comments[0].AuthorID).To(Equal(manager.ID))
		})

		It("requires a comment", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCommentRequired))

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusSubmitted))
		})

		It("refuses a manager who is not the assigned approver", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(otherManager, resp.ID, request.DecisionDTO{Comment: "Looks fine"})
			Expect(err).To(Equal(internal.ErrNotAssignedApprover))
		})

		It("refuses an employee", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(employee, resp.ID, request.DecisionDTO{Comment: "Approving myself"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("lets an admin approve any request", func() {
			resp := createRequest(employee)

			err := svc.ApproveRequest(admin, resp.ID, request.DecisionDTO{Comment: "Overriding approval"})
			Expect(err).ToNot(HaveOccurred())

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusApproved))
		})

		It("fails when the request is no longer SUBMITTED", func() {
			resp := createRequest(employee)
			Expect(svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "First"})).To(Succeed())

			err := svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "Second"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
			Expect(appErr.Message).To(ContainSubstring("APPROVED"))
		})

		It("returns not found for a missing request", func() {
			err := svc.ApproveRequest(manager, 404, request.DecisionDTO{Comment: "Nothing here"})
			Expect(err).To(Equal(internal.ErrRequestNotFound))
		})
	})

	Describe("RejectRequest", func() {
		It("records a REJECTED audit event with the comment", func() {
			resp := createRequest(employee)

			err := svc.RejectRequest(manager, resp.ID, request.DecisionDTO{Comment: "No budget this quarter"})
			Expect(err).ToNot(HaveOccurred())

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusRejected))

			trail, _ := mockRepo.AuditEventsForRequest(resp.ID)
			Expect(trail[len(trail)-1].EventType).To(Equal(request.EventRejected))

			comments, _ := mockRepo.CommentsForRequest(resp.ID)
			Expect(comments).To(HaveLen(1))
		})
	})

	Describe("CancelRequest", func() {
		It("lets the requester cancel a SUBMITTED request", func() {
			resp := createRequest(employee)

			Expect(svc.CancelRequest(employee, resp.ID)).To(Succeed())

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusCancelled))

			trail, _ := mockRepo.AuditEventsForRequest(resp.ID)
			Expect(trail[len(trail)-1].EventType).To(Equal(request.EventCancelled))
		})

		It("refuses anyone but the requester, including admins", func() {
			resp := createRequest(employee)

			Expect(svc.CancelRequest(manager, resp.ID)).To(Equal(internal.ErrAccessDenied))
			Expect(svc.CancelRequest(admin, resp.ID)).To(Equal(internal.ErrAccessDenied))
		})

		It("refuses to cancel once the request is approved", func() {
			resp := createRequest(employee)
			Expect(svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			err := svc.CancelRequest(employee, resp.ID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCannotModifyRequest))
		})
	})

	Describe("ChangeStatus", func() {
		advanceToApproved := func() int64 {
			resp := createRequest(employee)
			Expect(svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "ok"})).To(Succeed())
			return resp.ID
		}

		It("lets an admin move APPROVED to IN_PROGRESS and then DONE", func() {
			id := advanceToApproved()

			Expect(svc.ChangeStatus(admin, id, request.ChangeStatusDTO{Status: "IN_PROGRESS"})).To(Succeed())
			Expect(svc.ChangeStatus(admin, id, request.ChangeStatusDTO{Status: "DONE"})).To(Succeed())

			stored, _ := mockRepo.GetByID(id)
			Expect(stored.Status).To(Equal(request.StatusDone))
		})

		It("produces the full audit trail for the happy path", func() {
			id := advanceToApproved()
			Expect(svc.ChangeStatus(admin, id, request.ChangeStatusDTO{Status: "IN_PROGRESS"})).To(Succeed())
			Expect(svc.ChangeStatus(admin, id, request.ChangeStatusDTO{Status: "DONE"})).To(Succeed())

			trail, _ := mockRepo.AuditEventsForRequest(id)
			Expect(trail).To(HaveLen(4))
			Expect(trail[0].EventType).To(Equal(request.EventCreated))
			Expect(trail[1].EventType).To(Equal(request.EventApproved))
			Expect(trail[2].EventType).To(Equal(request.EventStatusChanged))
			Expect(trail[3].EventType).To(Equal(request.EventStatusChanged))
			Expect(*trail[3].FromStatus).To(Equal(string(request.StatusInProgress)))
			Expect(*trail[3].ToStatus).To(Equal(string(request.StatusDone)))
		})

		It("refuses non-admin actors", func() {
			id := advanceToApproved()

			err := svc.ChangeStatus(manager, id, request.ChangeStatusDTO{Status: "IN_PROGRESS"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeForbidden))
		})

		It("refuses skipping IN_PROGRESS", func() {
			id := advanceToApproved()

			err := svc.ChangeStatus(admin, id, request.ChangeStatusDTO{Status: "DONE"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})

		It("refuses moving a SUBMITTED request", func() {
			resp := createRequest(employee)

			err := svc.ChangeStatus(admin, resp.ID, request.ChangeStatusDTO{Status: "IN_PROGRESS"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidTransition))
		})
	})

	Describe("UpdateRequest", func() {
		It("lets the requester edit while SUBMITTED", func() {
			resp := createRequest(employee)

			updated, err := svc.UpdateRequest(employee, resp.ID, request.UpdateRequestDTO{
				TypeID:   2,
				Title:    "Replace broken laptop, urgent",
				Priority: "HIGH",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Title).To(Equal("Replace broken laptop, urgent"))
			Expect(updated.Priority).To(Equal(request.PriorityHigh))
		})

		It("refuses edits after approval", func() {
			resp := createRequest(employee)
			Expect(svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			_, err := svc.UpdateRequest(employee, resp.ID, request.UpdateRequestDTO{
				TypeID:   1,
				Title:    "Too late",
				Priority: "LOW",
			})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCannotModifyRequest))
		})

		It("refuses edits by anyone but the requester", func() {
			resp := createRequest(employee)

			_, err := svc.UpdateRequest(manager, resp.ID, request.UpdateRequestDTO{
				TypeID:   1,
				Title:    "Not yours",
				Priority: "LOW",
			})
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("GetRequestDetail", func() {
		It("returns comments and audit events in order", func() {
			resp := createRequest(employee)
			Expect(svc.ApproveRequest(manager, resp.ID, request.DecisionDTO{Comment: "Approved with note"})).To(Succeed())

			detail, err := svc.GetRequestDetail(employee, resp.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(detail.AuditEvents).To(HaveLen(2))
			Expect(detail.Comments).To(HaveLen(1))
			Expect(detail.Comments[0].Comment).To(Equal("Approved with note"))
		})

		It("denies an unrelated employee", func() {
			resp := createRequest(employee)

			stranger := &auth.User{ID: 77, Role: auth.RoleEmployee, IsActive: true}
			_, err := svc.GetRequestDetail(stranger, resp.ID)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("denies a manager who is not assigned", func() {
			resp := createRequest(employee)

			_, err := svc.GetRequestDetail(otherManager, resp.ID)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("AddComment", func() {
		It("appends the comment plus a COMMENT_ADDED audit event", func() {
			resp := createRequest(employee)

			comment, err := svc.AddComment(manager, resp.ID, request.AddCommentDTO{Comment: "Need a quote first"})
			Expect(err).ToNot(HaveOccurred())
			Expect(comment.Comment).To(Equal("Need a quote first"))

			trail, _ := mockRepo.AuditEventsForRequest(resp.ID)
			last := trail[len(trail)-1]
			Expect(last.EventType).To(Equal(request.EventCommentAdded))
			Expect(last.FromStatus).To(BeNil())
			Expect(last.ToStatus).To(BeNil())

			stored, _ := mockRepo.GetByID(resp.ID)
			Expect(stored.Status).To(Equal(request.StatusSubmitted))
		})

		It("requires a non-empty comment", func() {
			resp := createRequest(employee)

			_, err := svc.AddComment(employee, resp.ID, request.AddCommentDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCommentRequired))
		})

		It("denies users outside the request", func() {
			resp := createRequest(employee)

			stranger := &auth.User{ID: 77, Role: auth.RoleEmployee, IsActive: true}
			_, err := svc.AddComment(stranger, resp.ID, request.AddCommentDTO{Comment: "Drive-by"})
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("ListRequests", func() {
		var (
			mineID  int64
			otherID int64
		)

		BeforeEach(func() {
			mine := createRequest(employee)
			mineID = mine.ID

			otherEmployee := &auth.User{ID: 5, Role: auth.RoleEmployee, ManagerID: &otherMgr, IsActive: true}
			other, err := svc.CreateRequest(otherEmployee, request.CreateRequestDTO{
				TypeID:   2,
				Title:    "VPN access",
				Priority: "LOW",
			})
			Expect(err).ToNot(HaveOccurred())
			otherID = other.ID
		})

		It("shows employees only their own requests", func() {
			list, err := svc.ListRequests(employee, request.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(mineID))
		})

		It("defaults managers to their SUBMITTED queue", func() {
			list, err := svc.ListRequests(manager, request.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(mineID))

			Expect(svc.ApproveRequest(manager, mineID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			list, err = svc.ListRequests(manager, request.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(BeEmpty())
		})

		It("honors an explicit status filter for managers", func() {
			Expect(svc.ApproveRequest(manager, mineID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			list, err := svc.ListRequests(manager, request.ListFilter{Status: "APPROVED"})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Status).To(Equal(request.StatusApproved))
		})

		It("falls back to all assigned requests on an unrecognized status", func() {
			Expect(svc.ApproveRequest(manager, mineID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			list, err := svc.ListRequests(manager, request.ListFilter{Status: "BOGUS"})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
		})

		It("shows admins everything", func() {
			list, err := svc.ListRequests(admin, request.ListFilter{})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})

		It("applies type and priority filters on top of the visible set", func() {
			typeID := int64(2)
			list, err := svc.ListRequests(admin, request.ListFilter{TypeID: &typeID})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(otherID))

			list, err = svc.ListRequests(admin, request.ListFilter{Priority: "LOW"})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(otherID))
		})

		It("applies the status filter for admins", func() {
			Expect(svc.ApproveRequest(manager, mineID, request.DecisionDTO{Comment: "ok"})).To(Succeed())

			list, err := svc.ListRequests(admin, request.ListFilter{Status: "SUBMITTED"})
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].ID).To(Equal(otherID))
		})
	})
})
