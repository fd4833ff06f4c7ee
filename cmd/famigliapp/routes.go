package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	deletebravissimo "famigliapp/http-server/bravissimo/delete"
	getbravissimo "famigliapp/http-server/bravissimo/get"
	savebravissimo "famigliapp/http-server/bravissimo/save"
	deletecalendario "famigliapp/http-server/calendario/delete"
	getcalendario "famigliapp/http-server/calendario/get"
	savecalendario "famigliapp/http-server/calendario/save"
	upcalendario "famigliapp/http-server/calendario/update"
	deletecorso "famigliapp/http-server/corso/delete"
	getcorso "famigliapp/http-server/corso/get"
	savecorso "famigliapp/http-server/corso/save"
	upcorso "famigliapp/http-server/corso/update"
	getdashboard "famigliapp/http-server/dashboard/get"
	generate_excel "famigliapp/http-server/generate-report/generate-excel"
	deletekouza "famigliapp/http-server/kouza/delete"
	getkouza "famigliapp/http-server/kouza/get"
	savekouza "famigliapp/http-server/kouza/save"
	getpoints "famigliapp/http-server/points/get"
	uppoints "famigliapp/http-server/points/update"
	deletequests "famigliapp/http-server/quests/delete"
	getquests "famigliapp/http-server/quests/get"
	savequests "famigliapp/http-server/quests/save"
	deleteresoconto "famigliapp/http-server/resoconto/delete"
	getresoconto "famigliapp/http-server/resoconto/get"
	saveresoconto "famigliapp/http-server/resoconto/save"
	upresoconto "famigliapp/http-server/resoconto/update"
	deleteusers "famigliapp/http-server/users/delete"
	getusers "famigliapp/http-server/users/get"
	"famigliapp/http-server/users/login"
	saveusers "famigliapp/http-server/users/save"
	getvotebox "famigliapp/http-server/votebox/get"
	savevotebox "famigliapp/http-server/votebox/save"
	"famigliapp/internal/app"
	"famigliapp/internal/config"
	"famigliapp/internal/middleware/auth"
)

func routes(cfg config.Config, log *slog.Logger, a *app.App) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	st := a.Storage

	router.Post("/api/login", login.Login(log, st, a.Tokens))

	router.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(log, a.Tokens, st, a.AuthAdmin()))

		r.Get("/api/me", getusers.Me(log))
		r.Get("/api/users", getusers.ListUsers(log, st))
		r.Get("/api/dashboard", getdashboard.GetDashboard(log, a.Dashboard))

		// Bravissimo
		r.Get("/api/bravissimo", getbravissimo.ListBravissimo(log, st))
		r.Post("/api/bravissimo", savebravissimo.AddBravissimo(log, st))
		r.Delete("/api/bravissimo/{id}", deletebravissimo.DeleteBravissimo(log, st))

		// Corso
		r.Get("/api/corso", getcorso.ListCorsi(log, st))
		r.With(auth.RequireAdmin).Post("/api/corso", savecorso.AddCorso(log, st))
		r.With(auth.RequireAdmin).Put("/api/corso/{id}", upcorso.UpdateCorso(log, st))
		r.With(auth.RequireAdmin).Delete("/api/corso/{id}", deletecorso.DeleteCorso(log, st))

		// Calendario
		r.Route("/api/calendario", func(r chi.Router) {
			r.Get("/events", getcalendario.ListEvents(log, st))
			r.Post("/events", savecalendario.AddEvent(log, st))
			r.Put("/events/{id}", upcalendario.UpdateEvent(log, st))
			r.Delete("/events/{id}", deletecalendario.DeleteEvent(log, st))

			r.Get("/shifts", getcalendario.ListShifts(log, a.Calendario))
			r.Get("/rules", getcalendario.GetRules(log, a.Calendario))
			r.Post("/validate", savecalendario.ValidateShifts(log, a.Calendario))

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				r.Get("/employees", getcalendario.ListEmployees(log, st))
				r.Put("/employees", upcalendario.ReplaceEmployees(log, st))
				r.Put("/shifts", upcalendario.SaveShifts(log, a.Calendario))
				r.Put("/rules", upcalendario.SaveRules(log, st))
			})
		})

		// Resoconto
		r.Get("/api/resoconto", getresoconto.ListResoconti(log, st))
		r.Post("/api/resoconto", saveresoconto.AddResoconto(log, st))
		r.Put("/api/resoconto/{id}", upresoconto.UpdateResoconto(log, st))
		r.Delete("/api/resoconto/{id}", deleteresoconto.DeleteResoconto(log, st))
		r.With(auth.RequireAdmin).Post("/api/resoconto/{id}/feedback", saveresoconto.AddFeedback(log, st))

		// Kouza
		r.Get("/api/kouza", getkouza.ListKouza(log, st))
		r.Get("/api/kouza/pending", getkouza.Pending(log, st))
		r.With(auth.RequireAdmin).Post("/api/kouza", savekouza.AddKouza(log, st))
		r.With(auth.RequireAdmin).Delete("/api/kouza/{id}", deletekouza.DeleteKouza(log, st))
		r.Get("/api/kouza/{id}/feedback", getkouza.ListFeedback(log, st))
		r.Post("/api/kouza/{id}/feedback", savekouza.SubmitFeedback(log, st))

		// Quest Box
		r.Get("/api/quests", getquests.ListQuests(log, st))
		r.Post("/api/quests", savequests.AddQuest(log, st))
		r.Post("/api/quests/{id}/accept", savequests.AcceptQuest(log, st))
		r.Post("/api/quests/{id}/complete", savequests.CompleteQuest(log, st))
		r.Delete("/api/quests/{id}", deletequests.DeleteQuest(log, st))

		// Vote Box
		r.Get("/api/votebox", getvotebox.ListPolls(log, st))
		r.Post("/api/votebox", savevotebox.AddPoll(log, st))
		r.Get("/api/votebox/{id}", getvotebox.GetPoll(log, st))
		r.Post("/api/votebox/{id}/vote", savevotebox.Vote(log, st))
		r.Post("/api/votebox/{id}/close", savevotebox.ClosePoll(log, st))

		// Points
		r.Get("/api/points", getpoints.Ranking(log, st))
		r.Get("/api/points/{username}/history", getpoints.History(log, st))

		// Excel
		r.Get("/api/report/points.xlsx", generate_excel.PointsReport(log, a.Report))
		r.With(auth.RequireAdmin).Get("/api/report/shifts.xlsx", generate_excel.ShiftsReport(log, a.Report))

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/users", saveusers.CreateUser(log, st))
			r.Delete("/users/{username}", deleteusers.DeleteUser(log, st))
			r.Post("/points/{username}", uppoints.ApplyPoints(log, st))
		})
	})

	frontend(router, cfg, log)

	return router
}

// frontend раздаёт собранный SPA; любой неизвестный путь вне /api/ → index.html.
func frontend(router *chi.Mux, cfg config.Config, log *slog.Logger) {
	frontendDir := cfg.HTTPServer.FrontendDir
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving API only", slog.String("path", frontendDir))
		return
	}

	fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	index := filepath.Join(frontendDir, "index.html")

	router.With(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass)).Handle("/admin/*",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		}),
	)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
