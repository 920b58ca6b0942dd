package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/liftledger/liftledger-backend/api/controllers"
	"github.com/liftledger/liftledger-backend/api/middleware"
	"github.com/liftledger/liftledger-backend/internal/auth"
	"github.com/liftledger/liftledger-backend/internal/exercises"
	"github.com/liftledger/liftledger-backend/internal/users"
	"github.com/liftledger/liftledger-backend/internal/workouts"
	"github.com/liftledger/liftledger-backend/pkg/config"
	"github.com/liftledger/liftledger-backend/pkg/db"
	"github.com/liftledger/liftledger-backend/pkg/logger"
	"github.com/liftledger/liftledger-backend/pkg/metrics"
	"github.com/liftledger/liftledger-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	authService auth.Service,
	exercisesService exercises.Service,
	usersService users.Service,
	workoutsService workouts.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
		middleware.Auth(cfg.JWT, logg),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	// rate limiting drops out entirely when redis is not configured
	limitWith := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(dbP, cachePinger(redisClient), logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/auth", func(r chi.Router) {
		r.With(limitWith(loginPolicy)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(limitWith(registerPolicy)).Post("/register", controllers.AuthRegister(authService, logg))
	})

	r.Route("/exercises", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(middleware.LoggedIn(), logg))
			r.Get("/", controllers.ListExercises(exercisesService, logg))
			r.Get("/{id}", controllers.GetExercise(exercisesService, logg))
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(middleware.AdminOnly(), logg))
			r.Post("/", controllers.CreateExercise(exercisesService, logg))
			r.Patch("/{id}", controllers.UpdateExercise(exercisesService, logg))
			r.Delete("/{id}", controllers.DeleteExercise(exercisesService, logg))
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(middleware.AdminOnly(), logg))
			r.Get("/", controllers.ListUsers(usersService, logg))
			r.Post("/", controllers.CreateUser(usersService, logg))
			r.Delete("/{username}", controllers.DeleteUser(usersService, logg))
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(middleware.SelfOrAdmin("username"), logg))
			r.Get("/{username}", controllers.GetUser(usersService, workoutsService, logg))
			r.Patch("/{username}", controllers.UpdateUser(usersService, logg))

			r.Route("/{username}/workouts", func(r chi.Router) {
				r.Get("/", controllers.ListWorkouts(workoutsService, logg))
				r.Post("/", controllers.CreateWorkout(workoutsService, logg))
				r.Get("/{id}", controllers.GetWorkout(workoutsService, logg))
				r.Patch("/{id}", controllers.UpdateWorkout(workoutsService, logg))
				r.Patch("/{id}/exercises", controllers.UpdateWorkoutDetails(workoutsService, logg))
				r.Delete("/{id}", controllers.DeleteWorkout(workoutsService, logg))
			})
		})
	})

	r.With(middleware.Authorize(middleware.AdminOnly(), logg)).
		Get("/workouts", controllers.AdminListWorkouts(workoutsService, logg))

	return r
}

// cachePinger keeps the readiness check's redis probe optional without
// handing a typed nil through the interface.
func cachePinger(client *redis.Client) db.Pinger {
	if client == nil {
		return nil
	}
	return client
}
