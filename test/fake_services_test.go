//go:build integration_test || all_tests

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

type fakeProfile struct {
	UserID                        int     `json:"user_id"`
	FitnessLevel                  string  `json:"fitness_level"`
	FitnessLevelUpdatedAt         *string `json:"fitness_level_updated_at"`
	ActiveDays                    int     `json:"active_days"`
	TotalWorkoutsCompleted        int     `json:"total_workouts_completed"`
	TotalWorkoutMinutes           int     `json:"total_workout_minutes"`
	AdvancedWorkoutsCompleted     int     `json:"advanced_workouts_completed"`
	GoalsAchievedCount            int     `json:"goals_achieved_count"`
	GroupWorkoutsCount            int     `json:"group_workouts_count"`
	LongestStreakDays             int     `json:"longest_streak_days"`
	CurrentStreakDays             int     `json:"current_streak_days"`
	LastWorkoutDate               string  `json:"last_workout_date"`
	ProfileCompletenessPercentage int     `json:"profile_completeness_percentage"`
}

// fakeAuthService plays the auth service: token validation and the internal users API
// that owns the progression counters.
type fakeAuthService struct {
	mu       sync.Mutex
	tokens   map[string]int
	profiles map[int]*fakeProfile
	server   *httptest.Server
}

func newFakeAuthService() *fakeAuthService {
	f := &fakeAuthService{
		tokens:   map[string]int{},
		profiles: map[int]*fakeProfile{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/user", f.handleUser).Methods("GET")
	r.HandleFunc("/api/internal/users/{id}", f.handleSnapshot).Methods("GET")
	r.HandleFunc("/api/internal/users/{id}/fitness-level", f.handleFitnessLevel).Methods("PUT")
	r.HandleFunc("/api/internal/users/{id}/progression-metrics", f.handleMetrics).Methods("PUT")
	r.HandleFunc("/api/internal/users/{id}/streak", f.handleStreak).Methods("PUT")
	f.server = httptest.NewServer(r)

	return f
}

func (f *fakeAuthService) URL() string {
	return f.server.URL
}

func (f *fakeAuthService) Close() {
	f.server.Close()
}

func (f *fakeAuthService) addUser(token string, p fakeProfile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = p.UserID
	f.profiles[p.UserID] = &p
}

func (f *fakeAuthService) profile(userID int) fakeProfile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.profiles[userID]
}

func (f *fakeAuthService) handleUser(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	f.mu.Lock()
	userID, ok := f.tokens[token]
	f.mu.Unlock()
	if !ok {
		http.Error(w, `{"message":"Unauthenticated."}`, http.StatusUnauthorized)
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":    userID,
		"email": "user" + strconv.Itoa(userID) + "@fitnease.app",
	})
}

func (f *fakeAuthService) withProfile(w http.ResponseWriter, r *http.Request, fn func(p *fakeProfile)) {
	userID, _ := strconv.Atoi(mux.Vars(r)["id"])

	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		http.Error(w, `{"message":"User not found"}`, http.StatusNotFound)
		return
	}
	fn(p)
	_ = json.NewEncoder(w).Encode(p)
}

func (f *fakeAuthService) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	f.withProfile(w, r, func(p *fakeProfile) {})
}

func (f *fakeAuthService) handleFitnessLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FitnessLevel          string `json:"fitness_level"`
		FitnessLevelUpdatedAt string `json:"fitness_level_updated_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.withProfile(w, r, func(p *fakeProfile) {
		p.FitnessLevel = req.FitnessLevel
		p.FitnessLevelUpdatedAt = &req.FitnessLevelUpdatedAt
	})
}

func (f *fakeAuthService) handleMetrics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IncrementWorkouts         bool   `json:"increment_workouts"`
		AddMinutes                int    `json:"add_minutes"`
		IncrementAdvancedWorkouts bool   `json:"increment_advanced_workouts"`
		IncrementGroupWorkouts    bool   `json:"increment_group_workouts"`
		LastWorkoutDate           string `json:"last_workout_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.withProfile(w, r, func(p *fakeProfile) {
		if req.IncrementWorkouts {
			p.TotalWorkoutsCompleted++
		}
		if req.IncrementAdvancedWorkouts {
			p.AdvancedWorkoutsCompleted++
		}
		if req.IncrementGroupWorkouts {
			p.GroupWorkoutsCount++
		}
		p.TotalWorkoutMinutes += req.AddMinutes
		if _, err := time.Parse(time.DateOnly, req.LastWorkoutDate); err == nil {
			p.LastWorkoutDate = req.LastWorkoutDate
		}
	})
}

func (f *fakeAuthService) handleStreak(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IncrementStreak bool `json:"increment_streak"`
		ResetStreak     bool `json:"reset_streak"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.withProfile(w, r, func(p *fakeProfile) {
		switch {
		case req.ResetStreak:
			p.CurrentStreakDays = 1
		case req.IncrementStreak:
			p.CurrentStreakDays++
			p.LongestStreakDays = max(p.LongestStreakDays, p.CurrentStreakDays)
		}
	})
}
