package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/handler/http/mocks"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_RegisterUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockRegisterService
		wantStatusCode int
	}{
		{
			name: "valid_request_return_201",
			body: `{"login":"sharma_traders","password":"s3cret","businessName":"Sharma Traders"}`,
			setup: func(t *testing.T) *mocks.MockRegisterService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockRegisterService(ctrl)
				svcMock.EXPECT().Register(gomock.Any(), "sharma_traders", "s3cret", "Sharma Traders").
					Return(&models.User{
						ID:            uuid.New(),
						Login:         "sharma_traders",
						BusinessName:  "Sharma Traders",
						AccountStatus: models.AccountStatusPending,
					}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "missing_business_name_return_400",
			body: `{"login":"sharma_traders","password":"s3cret"}`,
			setup: func(t *testing.T) *mocks.MockRegisterService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockRegisterService(ctrl)
				svcMock.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "duplicate_login_return_409",
			body: `{"login":"sharma_traders","password":"s3cret","businessName":"Sharma Traders"}`,
			setup: func(t *testing.T) *mocks.MockRegisterService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockRegisterService(ctrl)
				svcMock.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, models.ErrConflictData).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uh := NewUserHandler(tt.setup(t), nil)

			req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(tt.body))

			w := httptest.NewRecorder()
			uh.RegisterUser().ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}

func TestUserHandler_LoginUser(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(t *testing.T) *mocks.MockLoginService
		wantStatusCode int
		wantCookie     bool
	}{
		{
			name: "valid_request_return_200",
			body: `{"login":"sharma_traders","password":"s3cret"}`,
			setup: func(t *testing.T) *mocks.MockLoginService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockLoginService(ctrl)
				svcMock.EXPECT().Login(gomock.Any(), "sharma_traders", "s3cret").
					Return("token123", nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantCookie:     true,
		},
		{
			name: "wrong_password_return_401",
			body: `{"login":"sharma_traders","password":"wrong"}`,
			setup: func(t *testing.T) *mocks.MockLoginService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockLoginService(ctrl)
				svcMock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", models.ErrInvalidCredentials).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "unknown_login_return_401",
			body: `{"login":"ghost","password":"s3cret"}`,
			setup: func(t *testing.T) *mocks.MockLoginService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockLoginService(ctrl)
				svcMock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "pending_account_return_403",
			body: `{"login":"sharma_traders","password":"s3cret"}`,
			setup: func(t *testing.T) *mocks.MockLoginService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockLoginService(ctrl)
				svcMock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", models.ErrAccountNotApproved).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusForbidden,
		},
		{
			name: "service_error_return_500",
			body: `{"login":"sharma_traders","password":"s3cret"}`,
			setup: func(t *testing.T) *mocks.MockLoginService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockLoginService(ctrl)
				svcMock.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("storage down")).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uh := NewUserHandler(nil, tt.setup(t))

			req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(tt.body))

			w := httptest.NewRecorder()
			uh.LoginUser().ServeHTTP(w, req)

			res := w.Result()
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantCookie {
				cookies := res.Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, "auth_token", cookies[0].Name)
				assert.Equal(t, "token123", cookies[0].Value)
			}
		})
	}
}
