package main

import (
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/permissions"
	"inkwell/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Services
	identity := services.NewIdentityService(db.DB)
	content := services.NewContentService(db.DB)
	guard := permissions.NewGuard(permissions.ParseEditPolicy(os.Getenv("EDIT_POLICY")))

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inkwell_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser(identity))

	// Handlers
	authHandler := handlers.NewAuthHandler(identity)
	postHandler := handlers.NewPostHandler(content, guard)
	pagesHandler := handlers.NewPagesHandler()

	// Public Routes
	r.GET("/", postHandler.List)
	r.GET("/post/:id", postHandler.Detail)
	r.POST("/post/:id/comment", postHandler.CreateComment) // guard refuses anonymous submitters
	r.GET("/about", pagesHandler.About)
	r.GET("/contact", pagesHandler.Contact)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create_post", postHandler.ShowCreate)
		authorized.POST("/create_post", postHandler.Create)
		authorized.GET("/edit_post/:id", postHandler.ShowEdit)
		authorized.POST("/edit_post/:id", postHandler.Update)
		authorized.GET("/delete-post/:id", postHandler.Delete) // guard allows the admin only
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Inkwell server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files: every view is rendered inside the layouts.
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+1)
		files = append(files, layouts...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"postDate": func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Posts
	r.AddFromFilesFuncs("post/list.html", funcMap, assemble(templatesDir+"/views/post/list.html")...)
	r.AddFromFilesFuncs("post/detail.html", funcMap, assemble(templatesDir+"/views/post/detail.html")...)
	r.AddFromFilesFuncs("post/create.html", funcMap, assemble(templatesDir+"/views/post/create.html")...)
	r.AddFromFilesFuncs("post/edit.html", funcMap, assemble(templatesDir+"/views/post/edit.html")...)

	// Static pages
	r.AddFromFilesFuncs("pages/about.html", funcMap, assemble(templatesDir+"/views/pages/about.html")...)
	r.AddFromFilesFuncs("pages/contact.html", funcMap, assemble(templatesDir+"/views/pages/contact.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
