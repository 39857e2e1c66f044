package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"quiz-contest-service/internal/app"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth           *app.AuthService
	Quizzes        *app.QuizService
	Questions      *app.QuestionService
	Participations *app.ParticipationService
	Events         *app.EventService
	Content        *app.ContentService
	Messaging      *app.MessagingService
}

// NewRouter builds the full route tree. Public reads sit outside the auth
// middleware; mutations require a token and admin surfaces additionally
// require an admin role.
func NewRouter(s Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := Authenticate(s.Auth)
	admin := RequireAdmin()

	api := r.Group("/api/v1")

	authHandler := NewAuthHandler(s.Auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/profile", authed, authHandler.Profile)
	}

	quizHandler := NewQuizHandler(s.Quizzes)
	quiz := api.Group("/quiz")
	{
		quiz.GET("", quizHandler.List)
		quiz.GET("/event/:eventId", quizHandler.ListByEvent)
		quiz.GET("/:id/stats", quizHandler.Stats)
		quiz.GET("/:id", quizHandler.Get)
		quiz.POST("", authed, admin, quizHandler.Create)
		quiz.PUT("/:id", authed, admin, quizHandler.Update)
		quiz.DELETE("/:id", authed, admin, quizHandler.Delete)
	}

	questionHandler := NewQuestionHandler(s.Questions)
	questions := api.Group("/questions")
	{
		questions.GET("/quiz/:quizId", questionHandler.ListByQuiz)
		questions.GET("/type/:type", questionHandler.ListByType)
		questions.POST("/:id/submit-answer", questionHandler.SubmitAnswer)
		questions.GET("/:id", questionHandler.Get)
		questions.POST("", authed, admin, questionHandler.Create)
		questions.POST("/bulk", authed, admin, questionHandler.CreateBatch)
		questions.PUT("/:id", authed, admin, questionHandler.Update)
		questions.DELETE("/bulk", authed, admin, questionHandler.DeleteBatch)
		questions.DELETE("/:id", authed, admin, questionHandler.Delete)
	}

	participationHandler := NewParticipationHandler(s.Participations)
	wsHandler := NewLeaderboardWSHandler(s.Participations)
	participation := api.Group("/participation")
	{
		participation.GET("", participationHandler.List)
		participation.GET("/quiz/:quizId", participationHandler.ListByQuiz)
		participation.GET("/quiz/:quizId/live", wsHandler.ServeWS)
		participation.POST("/check", participationHandler.Check)
		participation.GET("/:id", participationHandler.Get)
		participation.POST("", authed, participationHandler.Start)
		participation.POST("/:id/submit-answer", authed, participationHandler.SubmitAnswer)
		participation.POST("/:id/complete", authed, participationHandler.Complete)
		participation.PUT("/:id", authed, admin, participationHandler.Update)
		participation.DELETE("/:id", authed, admin, participationHandler.Delete)
	}

	eventHandler := NewEventHandler(s.Events)
	events := api.Group("/events")
	{
		events.GET("", eventHandler.List)
		events.GET("/:id", eventHandler.Get)
		events.GET("/:id/participants", eventHandler.Participants)
		events.POST("", authed, admin, eventHandler.Create)
		events.PUT("/:id", authed, admin, eventHandler.Update)
		events.DELETE("/:id", authed, admin, eventHandler.Delete)
		events.POST("/add-participant", authed, eventHandler.AddParticipant)
	}

	contentHandler := NewContentHandler(s.Content)
	banner := api.Group("/banner")
	{
		banner.GET("", contentHandler.ListApprovedBanners)
		banner.POST("", authed, admin, contentHandler.CreateBanner)
		banner.GET("/admin", authed, admin, contentHandler.ListBanners)
		banner.GET("/admin/:id", authed, admin, contentHandler.GetBanner)
		banner.PUT("/:id", authed, admin, contentHandler.UpdateBanner)
		banner.DELETE("/:id", authed, admin, contentHandler.DeleteBanner)
	}

	offers := api.Group("/offers")
	{
		offers.GET("", contentHandler.ListApprovedOffers)
		offers.POST("", authed, admin, contentHandler.CreateOffer)
		offers.GET("/admin", authed, admin, contentHandler.ListOffers)
		offers.GET("/admin/:id", authed, admin, contentHandler.GetOffer)
		offers.PUT("/:id", authed, admin, contentHandler.UpdateOffer)
		offers.DELETE("/:id", authed, admin, contentHandler.DeleteOffer)
	}

	judge := api.Group("/judge")
	{
		judge.GET("", contentHandler.ListJudgePanels)
		judge.GET("/:id", contentHandler.GetJudgePanel)
		judge.POST("", authed, admin, contentHandler.CreateJudgePanel)
		judge.PUT("/:id", authed, admin, contentHandler.UpdateJudgePanel)
		judge.DELETE("/:id", authed, admin, contentHandler.DeleteJudgePanel)
	}

	faq := api.Group("/faq")
	{
		faq.GET("", contentHandler.ListApprovedFAQs)
		faq.GET("/latest", contentHandler.LatestFAQ)
		faq.POST("", authed, admin, contentHandler.CreateFAQ)
		faq.GET("/admin", authed, admin, contentHandler.ListFAQs)
		faq.GET("/admin/:id", authed, admin, contentHandler.GetFAQ)
		faq.PUT("/:id", authed, admin, contentHandler.UpdateFAQ)
		faq.DELETE("/:id", authed, admin, contentHandler.DeleteFAQ)
	}

	timeInstruction := api.Group("/time-instruction")
	{
		timeInstruction.GET("", contentHandler.LatestTimeInstruction)
		timeInstruction.POST("", authed, admin, contentHandler.CreateTimeInstruction)
		timeInstruction.GET("/admin", authed, admin, contentHandler.ListTimeInstructions)
		timeInstruction.GET("/admin/:id", authed, admin, contentHandler.GetTimeInstruction)
		timeInstruction.PUT("/:id", authed, admin, contentHandler.UpdateTimeInstruction)
		timeInstruction.DELETE("/:id", authed, admin, contentHandler.DeleteTimeInstruction)
	}

	messagingHandler := NewMessagingHandler(s.Messaging)
	messaging := api.Group("/messaging", authed, admin)
	{
		messaging.POST("/bulk-sms", messagingHandler.SendBulk)
		messaging.GET("/history", messagingHandler.History)
		messaging.GET("/stats", messagingHandler.Stats)
		messaging.GET("/:id", messagingHandler.Get)
		messaging.PUT("/:id/status", messagingHandler.UpdateStatus)
		messaging.DELETE("/:id", messagingHandler.Delete)
	}

	return r
}
