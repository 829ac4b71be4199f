package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/core/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
)

type WorkRecordServiceTestSuite struct {
	suite.Suite
	principalRepo *MockPrincipalRepository
	projectRepo   *MockProjectRepository
	categoryRepo  *MockCategoryRepository
	workRepo      *MockWorkRecordRepository
	service       portssvc.WorkRecordSvcFacade
	ctx           context.Context
	now           time.Time
}

var userProjectScope = domain.Scope{Kind: domain.EntityProject, Clause: domain.ClauseManagedBy, Subject: "adm"}

func intPtr(i int) *int { return &i }

func (suite *WorkRecordServiceTestSuite) SetupTest() {
	suite.principalRepo = new(MockPrincipalRepository)
	suite.projectRepo = new(MockProjectRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.workRepo = new(MockWorkRecordRepository)
	suite.ctx = context.Background()
	suite.now = time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)

	suite.principalRepo.On("FindPrincipalByID", mock.Anything, "adm").Return(admin("adm"), nil)
	suite.principalRepo.On("FindPrincipalByID", mock.Anything, "usr").Return(standardUser("usr", "adm"), nil)

	suite.service = services.NewWorkRecordService(suite.workRepo, suite.projectRepo, suite.categoryRepo,
		services.NewScopeResolver(suite.principalRepo),
		services.WithWorkRecordClock(func() time.Time { return suite.now }))
}

func (suite *WorkRecordServiceTestSuite) projectWithCategories() {
	suite.projectRepo.On("FindProjectInScope", mock.Anything, userProjectScope, "p1").Return(&domain.Project{ProjectID: "p1", ManagedBy: "adm"}, nil).Once()
	suite.categoryRepo.On("FindCategoriesByProject", mock.Anything, mock.Anything, "p1").Return([]domain.Category{{CategoryID: "c1", ProjectID: "p1"}}, nil)
}

func (suite *WorkRecordServiceTestSuite) TestSubmitWork_SkipsInvalidLines() {
	suite.projectWithCategories()
	req := dto.SubmitWorkRequest{
		ProjectID: "p1",
		Entries: []dto.WorkEntryInput{
			{FolderName: "Folder A", CategoryID: stringPtr("c1"), Quantity: intPtr(3), Date: stringPtr("2025-03-03")},
			{FolderName: "Folder B", Quantity: intPtr(0)},
			{FolderName: "  ", Quantity: intPtr(1)},
			{FolderName: "Folder C"},
			{FolderName: "Folder D", Quantity: intPtr(-2)},
			{FolderName: "Folder E", CategoryID: stringPtr("foreign"), Quantity: intPtr(1)},
			{FolderName: "Folder F", Quantity: intPtr(1), Date: stringPtr("03/03/2025")},
		},
	}
	suite.workRepo.On("SaveWorkRecords", mock.Anything, mock.MatchedBy(func(rs []domain.WorkRecord) bool {
		return len(rs) == 2 &&
			rs[0].FolderName == "Folder A" && *rs[0].UserID == "usr" && *rs[0].CategoryID == "c1" &&
			rs[0].Date.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) &&
			rs[1].FolderName == "Folder B" && rs[1].CategoryID == nil && rs[1].Date.Equal(suite.now) &&
			!rs[0].IsSlot && !rs[1].IsSlot
	})).Return(nil).Once()

	created, skipped, err := suite.service.SubmitWork(suite.ctx, "usr", req)

	suite.Require().NoError(err)
	suite.Len(created, 2)
	suite.Equal(5, skipped)
	suite.workRepo.AssertExpectations(suite.T())
}

func (suite *WorkRecordServiceTestSuite) TestSubmitWork_DatesReadInConfiguredZone() {
	eastern := time.FixedZone("EST", -5*60*60)
	service := services.NewWorkRecordService(suite.workRepo, suite.projectRepo, suite.categoryRepo,
		services.NewScopeResolver(suite.principalRepo),
		services.WithWorkRecordClock(func() time.Time { return suite.now }),
		services.WithWorkRecordLocation(eastern))
	suite.projectWithCategories()

	var saved []domain.WorkRecord
	suite.workRepo.On("SaveWorkRecords", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.WorkRecord)
	}).Return(nil).Once()

	_, _, err := service.SubmitWork(suite.ctx, "usr", dto.SubmitWorkRequest{
		ProjectID: "p1",
		Entries:   []dto.WorkEntryInput{{FolderName: "Folder A", CategoryID: stringPtr("c1"), Quantity: intPtr(1), Date: stringPtr("2025-01-15")}},
	})

	suite.Require().NoError(err)
	suite.Require().Len(saved, 1)
	suite.True(saved[0].Date.Equal(time.Date(2025, 1, 15, 0, 0, 0, 0, eastern)))
	suite.Equal("2025-01-15", saved[0].Date.In(eastern).Format("2006-01-02"))

	day := time.Date(2025, 1, 15, 0, 0, 0, 0, eastern)
	filter := domain.WorkFilter{From: &day, To: &day}
	suite.True(filter.Matches(domain.WorkRecordDetail{WorkRecord: saved[0]}))
}

func (suite *WorkRecordServiceTestSuite) TestSubmitWork_AllSkippedWritesNothing() {
	suite.projectWithCategories()

	created, skipped, err := suite.service.SubmitWork(suite.ctx, "usr", dto.SubmitWorkRequest{
		ProjectID: "p1",
		Entries:   []dto.WorkEntryInput{{FolderName: ""}},
	})

	suite.Require().NoError(err)
	suite.Empty(created)
	suite.Equal(1, skipped)
	suite.workRepo.AssertNotCalled(suite.T(), "SaveWorkRecords", mock.Anything, mock.Anything)
}

func (suite *WorkRecordServiceTestSuite) TestSubmitWork_InvisibleProject() {
	suite.projectRepo.On("FindProjectInScope", mock.Anything, userProjectScope, "p9").Return(nil, apperrors.NewNotFoundError("project")).Once()

	_, _, err := suite.service.SubmitWork(suite.ctx, "usr", dto.SubmitWorkRequest{ProjectID: "p9", Entries: []dto.WorkEntryInput{{FolderName: "x", Quantity: intPtr(1)}}})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *WorkRecordServiceTestSuite) TestCreateSlots() {
	suite.Run("standard user forbidden", func() {
		suite.SetupTest()
		_, err := suite.service.CreateSlots(suite.ctx, "usr", dto.CreateSlotsRequest{ProjectID: "p1", Count: 2})
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("count bounds", func() {
		suite.SetupTest()
		_, err := suite.service.CreateSlots(suite.ctx, "adm", dto.CreateSlotsRequest{ProjectID: "p1", Count: services.MaxSlotsPerRequest + 1})
		suite.ErrorIs(err, apperrors.ErrValidation)
	})

	suite.Run("creates open slots", func() {
		suite.SetupTest()
		suite.projectRepo.On("FindProjectInScope", mock.Anything, mock.Anything, "p1").Return(&domain.Project{ProjectID: "p1", ManagedBy: "adm"}, nil).Once()
		suite.workRepo.On("SaveWorkRecords", mock.Anything, mock.MatchedBy(func(rs []domain.WorkRecord) bool {
			for _, r := range rs {
				if !r.IsOpenSlot() || r.FolderName != domain.SlotFolderName || r.Quantity != 0 {
					return false
				}
			}
			return len(rs) == 3
		})).Return(nil).Once()

		slots, err := suite.service.CreateSlots(suite.ctx, "adm", dto.CreateSlotsRequest{ProjectID: "p1", Count: 3})

		suite.Require().NoError(err)
		suite.Len(slots, 3)
		suite.workRepo.AssertExpectations(suite.T())
	})
}

func (suite *WorkRecordServiceTestSuite) TestFillSlots() {
	open := []domain.WorkRecordDetail{
		detail("s1", "", "p1", "adm", domain.SlotFolderName, 0, suite.now, "", ""),
		detail("s2", "", "p1", "adm", domain.SlotFolderName, 0, suite.now, "", ""),
		detail("s3", "", "p1", "adm", domain.SlotFolderName, 0, suite.now, "", ""),
	}
	suite.workRepo.On("FindOpenSlots", mock.Anything, userProjectScope).Return(open, nil).Once()
	suite.categoryRepo.On("FindCategoriesByProject", mock.Anything, mock.Anything, "p1").Return([]domain.Category{{CategoryID: "c1", ProjectID: "p1"}}, nil).Once()
	suite.workRepo.On("ClaimSlot", mock.Anything, "s1", "usr", "c1", 4, suite.now).Return(nil).Once()
	suite.workRepo.On("ClaimSlot", mock.Anything, "s2", "usr", "c1", 1, suite.now).Return(apperrors.NewNotFoundError("slot")).Once()

	filled, skipped, err := suite.service.FillSlots(suite.ctx, "usr", dto.FillSlotsRequest{Slots: []dto.FillSlotInput{
		{SlotID: "s1", CategoryID: stringPtr("c1"), Quantity: intPtr(4)},
		{SlotID: "s2", CategoryID: stringPtr("c1"), Quantity: intPtr(1)},
		{SlotID: "s3", CategoryID: stringPtr("foreign"), Quantity: intPtr(1)},
		{SlotID: "s3", Quantity: intPtr(1)},
		{SlotID: "unknown", CategoryID: stringPtr("c1"), Quantity: intPtr(1)},
		{SlotID: "s1", CategoryID: stringPtr("c1"), Quantity: intPtr(2)},
	}})

	suite.Require().NoError(err)
	suite.Equal(1, filled)
	suite.Equal(5, skipped)
	suite.workRepo.AssertExpectations(suite.T())
}

func (suite *WorkRecordServiceTestSuite) TestFillSlots_StorageFailure() {
	open := []domain.WorkRecordDetail{detail("s1", "", "p1", "adm", domain.SlotFolderName, 0, suite.now, "", "")}
	suite.workRepo.On("FindOpenSlots", mock.Anything, mock.Anything).Return(open, nil).Once()
	suite.categoryRepo.On("FindCategoriesByProject", mock.Anything, mock.Anything, "p1").Return([]domain.Category{{CategoryID: "c1"}}, nil).Once()
	suite.workRepo.On("ClaimSlot", mock.Anything, "s1", "usr", "c1", 1, suite.now).Return(errors.New("db down")).Once()

	_, _, err := suite.service.FillSlots(suite.ctx, "usr", dto.FillSlotsRequest{Slots: []dto.FillSlotInput{
		{SlotID: "s1", CategoryID: stringPtr("c1"), Quantity: intPtr(1)},
	}})

	suite.Error(err)
}

func (suite *WorkRecordServiceTestSuite) TestDeleteWorkRecord() {
	suite.Run("standard user forbidden before any read", func() {
		suite.SetupTest()
		err := suite.service.DeleteWorkRecord(suite.ctx, "usr", "r1")
		suite.ErrorIs(err, apperrors.ErrForbidden)
		suite.workRepo.AssertNotCalled(suite.T(), "FindWorkRecordInScope", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("admin deletes record of managed project", func() {
		suite.SetupTest()
		record := detail("r1", "usr", "p1", "adm", "F", 1, suite.now, "", "")
		suite.workRepo.On("FindWorkRecordInScope", mock.Anything, mock.Anything, "r1").Return(&record, nil).Once()
		suite.workRepo.On("DeleteWorkRecord", mock.Anything, "r1").Return(nil).Once()

		suite.NoError(suite.service.DeleteWorkRecord(suite.ctx, "adm", "r1"))
		suite.workRepo.AssertExpectations(suite.T())
	})
}

func TestWorkRecordServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkRecordServiceTestSuite))
}
