package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/subhoajk39-commits/invvvoice/internal/apperrors"
	"github.com/subhoajk39-commits/invvvoice/internal/core/domain"
	portssvc "github.com/subhoajk39-commits/invvvoice/internal/core/ports/services"
	"github.com/subhoajk39-commits/invvvoice/internal/core/services"
	"github.com/subhoajk39-commits/invvvoice/internal/dto"
	"github.com/subhoajk39-commits/invvvoice/internal/utils"
)

type PrincipalServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockPrincipalRepository
	projectRepo *MockProjectRepository
	artifacts   *MockArtifactStore
	service     portssvc.PrincipalSvcFacade
	ctx         context.Context
}

func (suite *PrincipalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPrincipalRepository)
	suite.projectRepo = new(MockProjectRepository)
	suite.artifacts = new(MockArtifactStore)
	suite.service = services.NewPrincipalService(suite.mockRepo, suite.projectRepo, services.NewScopeResolver(suite.mockRepo),
		services.WithPrincipalAttachmentStore(suite.artifacts))
	suite.ctx = context.Background()
}

func (suite *PrincipalServiceTestSuite) actor(p *domain.Principal) {
	suite.mockRepo.On("FindPrincipalByID", mock.Anything, p.PrincipalID).Return(p, nil)
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_AdminCreatesStandardUser() {
	suite.actor(admin("adm"))
	req := dto.CreatePrincipalRequest{Username: " alice ", Email: "Alice@Example.com ", Password: "password123"}

	suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "alice@example.com").Return(nil, apperrors.NewNotFoundError("principal")).Once()
	suite.mockRepo.On("SavePrincipal", mock.Anything, mock.MatchedBy(func(p domain.Principal) bool {
		return p.Username == "alice" &&
			p.Email == "alice@example.com" &&
			p.Role == domain.RoleStandardUser &&
			p.IsCreatedBy("adm") &&
			utils.CheckPasswordHash("password123", p.PasswordHash)
	})).Return(nil).Once()

	created, err := suite.service.CreatePrincipal(suite.ctx, "adm", req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleStandardUser, created.Role)
	suite.NotEmpty(created.PrincipalID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_AdminCannotAssignAdminRole() {
	suite.actor(admin("adm"))
	req := dto.CreatePrincipalRequest{Username: "bob", Email: "bob@example.com", Password: "password123", Role: "admin"}

	_, err := suite.service.CreatePrincipal(suite.ctx, "adm", req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePrincipal", mock.Anything, mock.Anything)
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_SuperAdminAssignsRole() {
	suite.actor(superAdmin("root"))
	req := dto.CreatePrincipalRequest{Username: "carol", Email: "carol@example.com", Password: "password123", Role: "admin"}

	suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "carol@example.com").Return(nil, apperrors.NewNotFoundError("principal")).Once()
	suite.mockRepo.On("SavePrincipal", mock.Anything, mock.MatchedBy(func(p domain.Principal) bool {
		return p.Role == domain.RoleAdmin && p.IsCreatedBy("root")
	})).Return(nil).Once()

	created, err := suite.service.CreatePrincipal(suite.ctx, "root", req)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAdmin, created.Role)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_StandardUserForbidden() {
	suite.actor(standardUser("usr", "adm"))
	req := dto.CreatePrincipalRequest{Username: "dave", Email: "dave@example.com", Password: "password123"}

	_, err := suite.service.CreatePrincipal(suite.ctx, "usr", req)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_DuplicateEmail() {
	suite.actor(admin("adm"))
	req := dto.CreatePrincipalRequest{Username: "eve", Email: "eve@example.com", Password: "password123"}
	suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "eve@example.com").Return(standardUser("eve", "adm"), nil).Once()

	_, err := suite.service.CreatePrincipal(suite.ctx, "adm", req)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePrincipal", mock.Anything, mock.Anything)
}

func (suite *PrincipalServiceTestSuite) TestCreatePrincipal_CyclicChainRejected() {
	a := admin("a")
	a.CreatedBy = stringPtr("b")
	b := admin("b")
	b.CreatedBy = stringPtr("a")
	suite.actor(a)
	suite.actor(b)
	req := dto.CreatePrincipalRequest{Username: "frank", Email: "frank@example.com", Password: "password123"}
	suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "frank@example.com").Return(nil, apperrors.NewNotFoundError("principal")).Once()

	_, err := suite.service.CreatePrincipal(suite.ctx, "a", req)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SavePrincipal", mock.Anything, mock.Anything)
}

func (suite *PrincipalServiceTestSuite) TestGetPrincipal_OutOfScopeIsNotFound() {
	suite.actor(admin("adm"))
	scope := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseCreatedBy, Subject: "adm"}
	suite.mockRepo.On("FindPrincipalInScope", mock.Anything, scope, "stranger").Return(nil, apperrors.NewNotFoundError("principal")).Once()

	_, err := suite.service.GetPrincipal(suite.ctx, "adm", "stranger")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PrincipalServiceTestSuite) TestListPrincipals_StandardUserSeesSelfScope() {
	suite.actor(standardUser("usr", "adm"))
	scope := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseSelf, Subject: "usr"}
	suite.mockRepo.On("FindPrincipals", mock.Anything, scope, domain.PrincipalQuery{Limit: 20}).Return(nil, nil).Once()

	principals, err := suite.service.ListPrincipals(suite.ctx, "usr", dto.ListPrincipalsParams{Limit: 20})

	suite.Require().NoError(err)
	suite.NotNil(principals)
	suite.Empty(principals)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PrincipalServiceTestSuite) TestListPrincipals_InvalidRoleFilter() {
	suite.actor(admin("adm"))

	_, err := suite.service.ListPrincipals(suite.ctx, "adm", dto.ListPrincipalsParams{Role: "owner"})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PrincipalServiceTestSuite) TestUpdatePrincipalRole() {
	suite.Run("admin forbidden", func() {
		suite.SetupTest()
		suite.actor(admin("adm"))
		_, err := suite.service.UpdatePrincipalRole(suite.ctx, "adm", "usr", dto.UpdatePrincipalRoleRequest{Role: "admin"})
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("unchanged role does not write", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "usr").Return(standardUser("usr", "root"), nil).Once()

		target, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "usr", dto.UpdatePrincipalRoleRequest{Role: "user"})

		suite.Require().NoError(err)
		suite.Equal(domain.RoleStandardUser, target.Role)
		suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePrincipalRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("own role", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		_, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "root", dto.UpdatePrincipalRoleRequest{Role: "user"})
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("promotes", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "usr").Return(standardUser("usr", "root"), nil).Once()
		suite.mockRepo.On("CountPrincipals", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
		suite.mockRepo.On("UpdatePrincipalRole", mock.Anything, "usr", domain.RoleAdmin, stringPtr("root")).Return(nil).Once()

		target, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "usr", dto.UpdatePrincipalRoleRequest{Role: "admin"})

		suite.Require().NoError(err)
		suite.Equal(domain.RoleAdmin, target.Role)
		suite.mockRepo.AssertExpectations(suite.T())
	})

	suite.Run("promotion re-parents a user provisioned by an admin", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.actor(admin("adm"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "usr").Return(standardUser("usr", "adm"), nil).Once()
		suite.mockRepo.On("CountPrincipals", mock.Anything, mock.Anything, mock.Anything).Return(0, nil)
		suite.mockRepo.On("UpdatePrincipalRole", mock.Anything, "usr", domain.RoleAdmin, stringPtr("root")).Return(nil).Once()

		target, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "usr", dto.UpdatePrincipalRoleRequest{Role: "admin"})

		suite.Require().NoError(err)
		suite.Equal("root", *target.CreatedBy)
		suite.mockRepo.AssertExpectations(suite.T())
	})

	suite.Run("demoting a managing admin", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "adm").Return(admin("adm"), nil).Once()
		suite.projectRepo.On("CountProjectsOf", mock.Anything, "adm").Return(1, 1, nil).Once()

		_, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "adm", dto.UpdatePrincipalRoleRequest{Role: "user"})

		suite.ErrorIs(err, apperrors.ErrForbidden)
		suite.mockRepo.AssertNotCalled(suite.T(), "UpdatePrincipalRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("demoting an admin with provisioned users", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "adm").Return(admin("adm"), nil).Once()
		suite.projectRepo.On("CountProjectsOf", mock.Anything, "adm").Return(0, 0, nil).Once()
		provisioned := domain.Scope{Kind: domain.EntityPrincipal, Clause: domain.ClauseCreatedBy, Subject: "adm"}
		suite.mockRepo.On("CountPrincipals", mock.Anything, provisioned, (*domain.Role)(nil)).Return(2, nil).Once()

		_, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "adm", dto.UpdatePrincipalRoleRequest{Role: "user"})

		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("demotes an idle admin", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		idle := admin("adm")
		idle.CreatedBy = stringPtr("root")
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "adm").Return(idle, nil).Once()
		suite.projectRepo.On("CountProjectsOf", mock.Anything, "adm").Return(0, 0, nil).Once()
		suite.mockRepo.On("CountPrincipals", mock.Anything, mock.Anything, (*domain.Role)(nil)).Return(0, nil).Once()
		suite.mockRepo.On("UpdatePrincipalRole", mock.Anything, "adm", domain.RoleStandardUser, stringPtr("root")).Return(nil).Once()

		target, err := suite.service.UpdatePrincipalRole(suite.ctx, "root", "adm", dto.UpdatePrincipalRoleRequest{Role: "user"})

		suite.Require().NoError(err)
		suite.Equal(domain.RoleStandardUser, target.Role)
		suite.mockRepo.AssertExpectations(suite.T())
	})
}

func (suite *PrincipalServiceTestSuite) TestDeletePrincipal_Rules() {
	suite.Run("self deletion", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		err := suite.service.DeletePrincipal(suite.ctx, "root", "root")
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("creator deletion", func() {
		suite.SetupTest()
		a := admin("adm")
		a.CreatedBy = stringPtr("root")
		suite.actor(a)
		err := suite.service.DeletePrincipal(suite.ctx, "adm", "root")
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("standard user", func() {
		suite.SetupTest()
		suite.actor(standardUser("usr", "adm"))
		err := suite.service.DeletePrincipal(suite.ctx, "usr", "other")
		suite.ErrorIs(err, apperrors.ErrForbidden)
	})

	suite.Run("admin deleting a stranger", func() {
		suite.SetupTest()
		suite.actor(admin("adm"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "stranger").Return(nil, apperrors.NewNotFoundError("principal")).Once()

		err := suite.service.DeletePrincipal(suite.ctx, "adm", "stranger")

		suite.ErrorIs(err, apperrors.ErrNotFound)
		suite.mockRepo.AssertNotCalled(suite.T(), "DeletePrincipal", mock.Anything, mock.Anything)
	})

	suite.Run("admin deleting own user", func() {
		suite.SetupTest()
		suite.actor(admin("adm"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "usr").Return(standardUser("usr", "adm"), nil).Once()
		suite.projectRepo.On("FindProjectsOf", mock.Anything, "usr").Return([]domain.Project{}, nil).Once()
		suite.mockRepo.On("DeletePrincipal", mock.Anything, "usr").Return(nil).Once()

		suite.NoError(suite.service.DeletePrincipal(suite.ctx, "adm", "usr"))
		suite.mockRepo.AssertExpectations(suite.T())
		suite.artifacts.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
	})

	suite.Run("cascaded project attachments are removed", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "adm").Return(admin("adm"), nil).Once()
		suite.projectRepo.On("FindProjectsOf", mock.Anything, "adm").Return([]domain.Project{
			{ProjectID: "p1", AttachmentRef: stringPtr("attachments/p1/brief.pdf")},
			{ProjectID: "p2"},
			{ProjectID: "p3", AttachmentRef: stringPtr("attachments/p3/scope.pdf")},
		}, nil).Once()
		suite.mockRepo.On("DeletePrincipal", mock.Anything, "adm").Return(nil).Once()
		suite.artifacts.On("Delete", mock.Anything, "attachments/p1/brief.pdf").Return(nil).Once()
		suite.artifacts.On("Delete", mock.Anything, "attachments/p3/scope.pdf").Return(errors.New("bucket unavailable")).Once()

		suite.NoError(suite.service.DeletePrincipal(suite.ctx, "root", "adm"))
		suite.artifacts.AssertExpectations(suite.T())
	})

	suite.Run("attachments kept when the delete fails", func() {
		suite.SetupTest()
		suite.actor(superAdmin("root"))
		suite.mockRepo.On("FindPrincipalInScope", mock.Anything, mock.Anything, "adm").Return(admin("adm"), nil).Once()
		suite.projectRepo.On("FindProjectsOf", mock.Anything, "adm").Return([]domain.Project{{ProjectID: "p1", AttachmentRef: stringPtr("attachments/p1/brief.pdf")}}, nil).Once()
		suite.mockRepo.On("DeletePrincipal", mock.Anything, "adm").Return(errors.New("db down")).Once()

		suite.Error(suite.service.DeletePrincipal(suite.ctx, "root", "adm"))
		suite.artifacts.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
	})
}

func (suite *PrincipalServiceTestSuite) TestEnsureSuperAdmin() {
	suite.Run("creates when missing", func() {
		suite.SetupTest()
		suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "root@example.com").Return(nil, apperrors.NewNotFoundError("principal")).Twice()
		suite.mockRepo.On("SavePrincipal", mock.Anything, mock.MatchedBy(func(p domain.Principal) bool {
			return p.Role == domain.RoleSuperAdmin && p.CreatedBy == nil
		})).Return(nil).Once()

		p, created, err := suite.service.EnsureSuperAdmin(suite.ctx, "root", "root@example.com", "password123")

		suite.Require().NoError(err)
		suite.True(created)
		suite.Equal(domain.RoleSuperAdmin, p.Role)
		suite.mockRepo.AssertExpectations(suite.T())
	})

	suite.Run("keeps existing", func() {
		suite.SetupTest()
		suite.mockRepo.On("FindPrincipalByEmail", mock.Anything, "root@example.com").Return(superAdmin("root"), nil).Once()

		p, created, err := suite.service.EnsureSuperAdmin(suite.ctx, "root", "root@example.com", "password123")

		suite.Require().NoError(err)
		suite.False(created)
		suite.Equal("root", p.PrincipalID)
		suite.mockRepo.AssertNotCalled(suite.T(), "SavePrincipal", mock.Anything, mock.Anything)
	})
}

func TestPrincipalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PrincipalServiceTestSuite))
}
