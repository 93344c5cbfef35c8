package user_test

import (
	"net/http"
	"testing"

	"github.com/amirasaad/fintrack/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	testutils.E2ETestSuite
	testUser *testutils.TestUser
	token    string
}

func TestUserTestSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) SetupTest() {
	s.testUser = s.CreateTestUser()
	s.token = s.LoginUser(s.testUser)
}

func (s *UserTestSuite) TestGetMe() {
	resp := s.MakeRequest(http.MethodGet, "/users/me", "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var me map[string]any
	s.DecodeJSON(resp, &me)
	s.Equal(s.testUser.Email, me["email"])
	s.Equal(float64(s.testUser.ID), me["id"])
}

func (s *UserTestSuite) TestGetMeTokenFailures() {
	cases := []struct {
		desc  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "abc.def.ghi"},
	}
	for _, tc := range cases {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(http.MethodGet, "/users/me", "", tc.token)
			defer resp.Body.Close() //nolint:errcheck
			s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
			s.Equal("Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
		})
	}
}

func (s *UserTestSuite) TestUpdateMeVariants() {
	other := s.CreateTestUser()
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{"new username", `{"username":"renamed_` + s.testUser.Username + `"}`, fiber.StatusOK},
		{"own email again", `{"email":"` + s.testUser.Email + `"}`, fiber.StatusOK},
		{"email taken", `{"email":"` + other.Email + `"}`, fiber.StatusBadRequest},
		{"username taken", `{"username":"` + other.Username + `"}`, fiber.StatusBadRequest},
		{"empty patch", `{}`, fiber.StatusUnprocessableEntity},
		{"bad email", `{"email":"nope"}`, fiber.StatusUnprocessableEntity},
	}
	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			resp := s.MakeRequest(http.MethodPut, "/users/me", tc.body, s.token)
			defer resp.Body.Close() //nolint:errcheck
			s.Equal(tc.wantStatus, resp.StatusCode)
		})
	}
}

func (s *UserTestSuite) TestUpdateMeReportsWhichFieldIsTaken() {
	other := s.CreateTestUser()
	resp := s.MakeRequest(http.MethodPut, "/users/me", `{"email":"`+other.Email+`"}`, s.token)
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)
	var problem map[string]any
	s.DecodeJSON(resp, &problem)
	s.Equal("email already in use", problem["detail"])
}

func (s *UserTestSuite) TestDeleteMeCascades() {
	categoryID := s.CreateCategory(s.token, "Food")
	s.CreateTransaction(s.token, `{"amount":"12.00","transaction_type":"expense"}`)
	s.CreateTransaction(s.token, `{"amount":"3.50","transaction_type":"income","category_id":`+itoa(categoryID)+`}`)

	resp := s.MakeRequest(http.MethodDelete, "/users/me", "", s.token)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var msg map[string]string
	s.DecodeJSON(resp, &msg)
	s.Equal("Account deleted successfully", msg["message"])

	var count int64
	s.Require().NoError(s.DB.Table("transactions").Where("user_id = ?", s.testUser.ID).Count(&count).Error)
	s.Zero(count)
	s.Require().NoError(s.DB.Table("categories").Where("user_id = ?", s.testUser.ID).Count(&count).Error)
	s.Zero(count)

	resp = s.MakeRequest(http.MethodGet, "/users/me", "", s.token)
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode, "a token for a deleted user is rejected")
	var problem map[string]any
	s.DecodeJSON(resp, &problem)
	s.Equal("user not found", problem["detail"])
}

func (s *UserTestSuite) TestInactiveUserTokenRejected() {
	_, err := s.Deps.UserService.SetActive(s.T().Context(), s.testUser.ID, false)
	s.Require().NoError(err)

	resp := s.MakeRequest(http.MethodGet, "/users/me", "", s.token)
	s.Require().Equal(fiber.StatusBadRequest, resp.StatusCode)
	var problem map[string]any
	s.DecodeJSON(resp, &problem)
	s.Equal("inactive user", problem["detail"])
}
