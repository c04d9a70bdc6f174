package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-talentflow-backend/internal/domain"
	"go-talentflow-backend/internal/usecase"
	"go-talentflow-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) Fetch(ctx context.Context, q domain.PageQuery) ([]domain.Job, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Search(ctx context.Context, f domain.SearchFilter, q domain.PageQuery) ([]domain.Job, int64, error) {
	args := m.Called(ctx, f, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) FetchByCandidateID(ctx context.Context, candidateID int64) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Exists(ctx context.Context, candidateID, jobID int64) (bool, error) {
	args := m.Called(ctx, candidateID, jobID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

// Helpers

func testCodec() *token.Codec {
	return token.NewCodec("test-secret", time.Hour)
}

func ctxAs(id int64, role domain.Role) context.Context {
	return domain.WithPrincipal(context.Background(), domain.Principal{
		AccountID: id,
		Email:     "user@test.local",
		Role:      role,
		Authority: role.Authority(),
	})
}

func activeUser(id int64, role domain.Role) *domain.User {
	return &domain.User{
		ID:       id,
		FullName: "Test User",
		Email:    "user@test.local",
		Role:     role,
		IsActive: true,
	}
}

func TestLoginCredentialFailures(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, testCodec())

	t.Run("Unknown email and wrong password produce the same message", func(t *testing.T) {
		mockRepo.On("GetByEmail", mock.Anything, "ghost@test.local").Return(nil, domain.ErrNotFound)

		_, unknownErr := uc.Login(context.Background(), "ghost@test.local", "whatever")
		assert.Error(t, unknownErr)

		hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
		known := activeUser(1, domain.RoleCandidate)
		known.PasswordHash = string(hash)
		mockRepo.On("GetByEmail", mock.Anything, "user@test.local").Return(known, nil)

		_, wrongErr := uc.Login(context.Background(), "user@test.local", "wrong-password")
		assert.Error(t, wrongErr)

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
		assert.Contains(t, unknownErr.Error(), "Invalid email or password")
	})

	t.Run("Deactivated account cannot login with valid credentials", func(t *testing.T) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		frozen := activeUser(2, domain.RoleRecruiter)
		frozen.Email = "frozen@test.local"
		frozen.PasswordHash = string(hash)
		frozen.IsActive = false
		mockRepo.On("GetByEmail", mock.Anything, "frozen@test.local").Return(frozen, nil)

		_, err := uc.Login(context.Background(), "frozen@test.local", "secret123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Account is deactivated")
	})
}

func TestLoginSuccess(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, testCodec())

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	user := activeUser(7, domain.RoleCandidate)
	user.PasswordHash = string(hash)
	mockRepo.On("GetByEmail", mock.Anything, "user@test.local").Return(user, nil)

	result, err := uc.Login(context.Background(), "user@test.local", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, int64(7), result.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepo)
	uc := usecase.NewAuthUsecase(mockRepo, testCodec())

	mockRepo.On("ExistsByEmail", mock.Anything, "taken@test.local").Return(true, nil)

	_, err := uc.Register(context.Background(), domain.RegisterInput{
		FullName: "Dup",
		Email:    "taken@test.local",
		Password: "secret123",
		Role:     domain.RoleCandidate,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Email already exists")
}

func TestCreateJobRoleGate(t *testing.T) {
	mockJobs := new(MockJobRepo)
	mockUsers := new(MockUserRepo)
	uc := usecase.NewJobUsecase(mockJobs, mockUsers)

	input := domain.JobInput{
		Title:           "Backend Engineer",
		Description:     "Build services",
		Location:        "Remote",
		EmploymentType:  domain.EmploymentFullTime,
		RequiredSkills:  []string{"Go"},
		ExperienceLevel: "MID",
	}

	t.Run("Candidate cannot post jobs", func(t *testing.T) {
		mockUsers.On("GetByID", mock.Anything, int64(1)).Return(activeUser(1, domain.RoleCandidate), nil)

		_, err := uc.CreateJob(ctxAs(1, domain.RoleCandidate), input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only recruiters can post jobs")
	})

	t.Run("Deactivated recruiter cannot post jobs", func(t *testing.T) {
		frozen := activeUser(2, domain.RoleRecruiter)
		frozen.IsActive = false
		mockUsers.On("GetByID", mock.Anything, int64(2)).Return(frozen, nil)

		_, err := uc.CreateJob(ctxAs(2, domain.RoleRecruiter), input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Account is deactivated")
	})

	t.Run("Should fail safely without a principal", func(t *testing.T) {
		_, err := uc.CreateJob(context.Background(), input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Recruiter posts an open job owned by themselves", func(t *testing.T) {
		mockUsers.On("GetByID", mock.Anything, int64(3)).Return(activeUser(3, domain.RoleRecruiter), nil)
		mockJobs.On("Create", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.CreateJob(ctxAs(3, domain.RoleRecruiter), input)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobOpen, job.Status)
		assert.Equal(t, int64(3), job.PostedByID)
	})
}

func TestJobOwnership(t *testing.T) {
	input := domain.JobInput{
		Title:           "Updated Title",
		Description:     "Updated description",
		Location:        "Remote",
		EmploymentType:  domain.EmploymentContract,
		RequiredSkills:  []string{"Go", "SQL"},
		ExperienceLevel: "SENIOR",
	}
	ownedJob := func() *domain.Job {
		return &domain.Job{ID: 10, Title: "Old", Status: domain.JobOpen, PostedByID: 3}
	}

	t.Run("Another recruiter cannot update the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(ownedJob(), nil)

		_, err := uc.UpdateJob(ctxAs(99, domain.RoleRecruiter), 10, input)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only update your own jobs")
	})

	t.Run("Owner can update the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(ownedJob(), nil)
		mockJobs.On("Update", mock.Anything, mock.AnythingOfType("*domain.Job")).Return(nil)

		job, err := uc.UpdateJob(ctxAs(3, domain.RoleRecruiter), 10, input)
		assert.NoError(t, err)
		assert.Equal(t, "Updated Title", job.Title)
		// Status survives the update untouched
		assert.Equal(t, domain.JobOpen, job.Status)
	})

	t.Run("Admin can delete any job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(ownedJob(), nil)
		mockJobs.On("Delete", mock.Anything, int64(10)).Return(nil)

		err := uc.DeleteJob(ctxAs(42, domain.RoleAdmin), 10)
		assert.NoError(t, err)
	})

	t.Run("Another recruiter cannot delete the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(ownedJob(), nil)

		err := uc.DeleteJob(ctxAs(99, domain.RoleRecruiter), 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only delete your own jobs")
	})
}

func TestApplyGuards(t *testing.T) {
	openJob := func() *domain.Job {
		return &domain.Job{ID: 10, Title: "Backend Engineer", Status: domain.JobOpen, PostedByID: 3}
	}

	t.Run("Recruiter cannot apply", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), mockUsers)
		mockUsers.On("GetByID", mock.Anything, int64(3)).Return(activeUser(3, domain.RoleRecruiter), nil)

		_, err := uc.Apply(ctxAs(3, domain.RoleRecruiter), 10, "https://cv.test/r.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only candidates can apply for jobs")
	})

	t.Run("Cannot apply to a closed job", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs, mockUsers)
		mockUsers.On("GetByID", mock.Anything, int64(5)).Return(activeUser(5, domain.RoleCandidate), nil)
		closed := openJob()
		closed.Status = domain.JobClosed
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(closed, nil)

		_, err := uc.Apply(ctxAs(5, domain.RoleCandidate), 10, "https://cv.test/c.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot apply for a closed job")
	})

	t.Run("Cannot apply twice to the same job", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		mockJobs := new(MockJobRepo)
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockUsers)
		mockUsers.On("GetByID", mock.Anything, int64(5)).Return(activeUser(5, domain.RoleCandidate), nil)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		mockApps.On("Exists", mock.Anything, int64(5), int64(10)).Return(true, nil)

		_, err := uc.Apply(ctxAs(5, domain.RoleCandidate), 10, "https://cv.test/c.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You have already applied for this job")
	})

	t.Run("Missing job yields not found", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs, mockUsers)
		mockUsers.On("GetByID", mock.Anything, int64(5)).Return(activeUser(5, domain.RoleCandidate), nil)
		mockJobs.On("GetByID", mock.Anything, int64(404)).Return(nil, domain.ErrNotFound)

		_, err := uc.Apply(ctxAs(5, domain.RoleCandidate), 404, "https://cv.test/c.pdf")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Job not found with id: 404")
	})

	t.Run("Candidate applies and starts in APPLIED", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		mockJobs := new(MockJobRepo)
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, mockUsers)
		mockUsers.On("GetByID", mock.Anything, int64(5)).Return(activeUser(5, domain.RoleCandidate), nil)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(openJob(), nil)
		mockApps.On("Exists", mock.Anything, int64(5), int64(10)).Return(false, nil)
		mockApps.On("Create", mock.Anything, mock.AnythingOfType("*domain.Application")).Return(nil)

		app, err := uc.Apply(ctxAs(5, domain.RoleCandidate), 10, "https://cv.test/c.pdf")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationApplied, app.Status)
		assert.Equal(t, int64(5), app.CandidateID)
	})
}

func TestApplicationViewOwnership(t *testing.T) {
	job := &domain.Job{ID: 10, Title: "Backend Engineer", Status: domain.JobOpen, PostedByID: 3}

	t.Run("Another recruiter cannot view the job's applications", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)

		_, err := uc.ListByJob(ctxAs(99, domain.RoleRecruiter), 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only view applications for your own jobs")
	})

	t.Run("Owner lists the job's applications", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps.On("FetchByJobID", mock.Anything, int64(10)).Return([]domain.Application{{ID: 1, JobID: 10}}, nil)

		apps, err := uc.ListByJob(ctxAs(3, domain.RoleRecruiter), 10)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
	})

	t.Run("Export shares the ownership gate and names the file after the job", func(t *testing.T) {
		mockJobs := new(MockJobRepo)
		mockApps := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo))
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps.On("FetchByJobID", mock.Anything, int64(10)).Return([]domain.Application{
			{ID: 1, JobID: 10, CandidateName: "A", CandidateEmail: "a@test.local", Status: domain.ApplicationApplied},
		}, nil)

		content, filename, err := uc.ExportByJob(ctxAs(42, domain.RoleAdmin), 10)
		assert.NoError(t, err)
		assert.NotEmpty(t, content)
		assert.Equal(t, "applications_job_10.xlsx", filename)
	})

	t.Run("Should fail safely without a principal", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockUserRepo))
		_, err := uc.MyApplications(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	application := &domain.Application{ID: 1, JobID: 10, CandidateID: 5, Status: domain.ApplicationApplied}
	job := &domain.Job{ID: 10, Title: "Backend Engineer", Status: domain.JobOpen, PostedByID: 3}

	t.Run("Rejects a status outside the closed set", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), new(MockUserRepo))

		_, err := uc.UpdateStatus(ctxAs(3, domain.RoleRecruiter), 1, "HIRED")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
	})

	t.Run("Ownership is checked on the application's job", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo))
		mockApps.On("GetByID", mock.Anything, int64(1)).Return(application, nil)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)

		_, err := uc.UpdateStatus(ctxAs(99, domain.RoleRecruiter), 1, domain.ApplicationAccepted)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "You can only update applications for your own jobs")
	})

	t.Run("Owner overwrites the status", func(t *testing.T) {
		mockApps := new(MockApplicationRepo)
		mockJobs := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(mockApps, mockJobs, new(MockUserRepo))
		mockApps.On("GetByID", mock.Anything, int64(1)).Return(application, nil)
		mockJobs.On("GetByID", mock.Anything, int64(10)).Return(job, nil)
		mockApps.On("UpdateStatus", mock.Anything, int64(1), domain.ApplicationReviewed).Return(nil)

		updated, err := uc.UpdateStatus(ctxAs(3, domain.RoleRecruiter), 1, domain.ApplicationReviewed)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationReviewed, updated.Status)
	})
}

func TestPageQueryNormalization(t *testing.T) {
	mockJobs := new(MockJobRepo)
	uc := usecase.NewJobUsecase(mockJobs, new(MockUserRepo))

	mockJobs.On("Fetch", mock.Anything, domain.PageQuery{
		Page: 0, Size: 10, SortBy: "createdAt", SortDir: "DESC",
	}).Return([]domain.Job{}, int64(0), nil)

	_, _, err := uc.ListJobs(context.Background(), domain.PageQuery{Page: -3, Size: 0, SortDir: "sideways"})
	assert.NoError(t, err)
	mockJobs.AssertExpectations(t)
}
