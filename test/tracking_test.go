//go:build integration_test || all_tests

package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fitnease/tracking/internal/progression"
	"github.com/fitnease/tracking/internal/workouts"
	"github.com/fitnease/tracking/pkg"
)

func (s *IntegrationTestSuite) newRequest(method, path, token string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reader)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (s *IntegrationTestSuite) do(req *http.Request, target any) int {
	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	if target != nil {
		s.Require().NoError(json.Unmarshal(respBytes, target), string(respBytes))
	}
	return resp.StatusCode
}

func (s *IntegrationTestSuite) TestUnauthorized() {
	req := s.newRequest(http.MethodGet, "/api/tracking/progression/check/1", "", nil)
	s.Equal(http.StatusUnauthorized, s.do(req, nil))

	req = s.newRequest(http.MethodGet, "/api/tracking/progression/check/1", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, s.do(req, nil))
}

func (s *IntegrationTestSuite) TestWorkoutCompletion_AutoPromotes() {
	const (
		userID = 101
		token  = "token-101"
	)
	// 40 workouts, 600 minutes, 4 weeks, full profile: 298 points
	s.authService.addUser(token, fakeProfile{
		UserID:                        userID,
		FitnessLevel:                  "beginner",
		ActiveDays:                    28,
		TotalWorkoutsCompleted:        40,
		TotalWorkoutMinutes:           600,
		ProfileCompletenessPercentage: 100,
	})

	var check pkg.DataResponse
	checkData := &progression.EligibilityResult{}
	check.Data = checkData
	req := s.newRequest(http.MethodGet, fmt.Sprintf("/api/tracking/progression/check/%d", userID), token, nil)
	s.Require().Equal(http.StatusOK, s.do(req, &check))
	s.False(checkData.Eligible)
	s.Equal(298.0, checkData.Score)

	endTime := time.Now().UTC().Truncate(time.Second)
	startTime := endTime.Add(-45 * time.Minute)
	duration := 45
	difficulty := 2
	session := workouts.Session{
		UserID:                userID,
		WorkoutID:             7,
		SessionType:           workouts.SessionTypeIndividual,
		StartTime:             &startTime,
		EndTime:               &endTime,
		ActualDurationMinutes: &duration,
		DifficultyLevel:       &difficulty,
		IsCompleted:           true,
		CompletionPercentage:  100,
	}

	var created workouts.SessionResponse
	req = s.newRequest(http.MethodPost, "/api/tracking/workout-session", token, session)
	s.Require().Equal(http.StatusCreated, s.do(req, &created))
	s.True(created.Success)
	s.Require().NotNil(created.Data)
	s.Positive(created.Data.ID)

	// the counters went up and the new score (304.5) crossed the threshold
	p := s.authService.profile(userID)
	s.Equal(41, p.TotalWorkoutsCompleted)
	s.Equal(645, p.TotalWorkoutMinutes)
	s.Equal(endTime.Format(time.DateOnly), p.LastWorkoutDate)
	s.Equal("intermediate", p.FitnessLevel)
	s.Require().NotNil(p.FitnessLevelUpdatedAt)

	var stored int
	s.Require().NoError(s.DB.QueryRow(
		"SELECT COUNT(*) FROM workout_session WHERE user_id = $1 AND is_completed", userID,
	).Scan(&stored))
	s.Equal(1, stored)

	// next tier is advanced
	var progress pkg.DataResponse
	progressData := &progression.ProgressReport{}
	progress.Data = progressData
	req = s.newRequest(http.MethodGet, fmt.Sprintf("/api/tracking/progression/progress/%d", userID), token, nil)
	s.Require().Equal(http.StatusOK, s.do(req, &progress))
	s.False(progressData.Eligible)
	s.Equal(float64(progression.AdvancedScoreThreshold), progressData.RequiredScore)
	s.Require().NotNil(progressData.Requirements)
	s.Equal(progression.AdvancedMinActiveDays, progressData.Requirements.MinDays)

	var list pkg.DataResponse
	page := &workouts.SessionsPage{}
	list.Data = page
	req = s.newRequest(http.MethodGet, fmt.Sprintf("/api/tracking/workout-sessions/%d", userID), token, nil)
	s.Require().Equal(http.StatusOK, s.do(req, &list))
	s.Equal(1, page.Total)
	s.Require().Len(page.Sessions, 1)
	s.Equal(created.Data.ID, page.Sessions[0].ID)
}

func (s *IntegrationTestSuite) TestPromote_NotEligible() {
	const (
		userID = 102
		token  = "token-102"
	)
	s.authService.addUser(token, fakeProfile{
		UserID:                 userID,
		FitnessLevel:           "beginner",
		ActiveDays:             3,
		TotalWorkoutsCompleted: 2,
		TotalWorkoutMinutes:    60,
	})

	var resp progression.PromoteResponse
	req := s.newRequest(http.MethodPost, "/api/tracking/progression/promote", token, map[string]int{"user_id": userID})
	s.Require().Equal(http.StatusBadRequest, s.do(req, &resp))
	s.False(resp.Success)
	s.Equal("User is not eligible for promotion", resp.Message)
	s.Require().NotNil(resp.Eligibility)
	s.Equal(progression.LevelIntermediate, resp.Eligibility.TargetLevel)
	s.Equal("beginner", s.authService.profile(userID).FitnessLevel)
}

func (s *IntegrationTestSuite) TestUpdateSession_Validation() {
	const (
		userID = 103
		token  = "token-103"
	)
	s.authService.addUser(token, fakeProfile{UserID: userID, FitnessLevel: "beginner"})

	var resp workouts.SessionResponse
	req := s.newRequest(http.MethodPut, "/api/tracking/workout-session/999999", token, map[string]bool{"is_completed": true})
	s.Equal(http.StatusNotFound, s.do(req, &resp))
	s.Equal("Workout session not found", resp.Message)

	resp = workouts.SessionResponse{}
	req = s.newRequest(http.MethodPost, "/api/tracking/workout-session", token, map[string]any{
		"user_id":        userID,
		"workout_id":     1,
		"session_type":   "solo",
		"heart_rate_avg": 300,
	})
	s.Equal(http.StatusUnprocessableEntity, s.do(req, &resp))
	s.Equal("Validation failed", resp.Message)
	s.Contains(resp.Errors, "session_type")
	s.Contains(resp.Errors, "heart_rate_avg")
}
