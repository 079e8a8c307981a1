package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"inkwell/internal/models"
	"inkwell/internal/permissions"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	content *services.ContentService
	guard   *permissions.Guard
}

func NewPostHandler(content *services.ContentService, guard *permissions.Guard) *PostHandler {
	return &PostHandler{content: content, guard: guard}
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.content.ListPosts()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load posts")
		return
	}

	Render(c, http.StatusOK, "post/list.html", gin.H{
		"Posts": posts,
		"Title": "All Posts",
	})
}

func (h *PostHandler) Detail(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := h.content.GetPost(postID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not load post")
		return
	}

	comments, err := h.content.ListComments(post.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load comments")
		return
	}

	type renderedComment struct {
		models.Comment
		BodyHTML template.HTML
	}
	rendered := make([]renderedComment, len(comments))
	for i, com := range comments {
		rendered[i] = renderedComment{
			Comment:  com,
			BodyHTML: utils.RenderMarkdown(com.Body),
		}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Post":     post,
		"PostBody": utils.RenderMarkdown(post.Body),
		"Comments": rendered,
		"Title":    post.Title,
		"IsAdmin":  permissions.IsAdmin(CurrentUser(c)),
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	if !h.guard.Can(CurrentUser(c), permissions.ActionCreatePost, nil) {
		RenderForbidden(c)
		return
	}
	Render(c, http.StatusOK, "post/create.html", gin.H{"Title": "New Post"})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := CurrentUser(c)
	if !h.guard.Can(user, permissions.ActionCreatePost, nil) {
		RenderForbidden(c)
		return
	}

	title := c.PostForm("title")
	subtitle := c.PostForm("subtitle")
	body := c.PostForm("body")
	imageURL := c.PostForm("image_url")

	if title == "" || body == "" {
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{
			"Error": "Title and body are required",
			"Title": "New Post",
			"Form":  gin.H{"Title": title, "Subtitle": subtitle, "Body": body, "ImageURL": imageURL},
		})
		return
	}

	post, err := h.content.CreatePost(title, subtitle, body, imageURL, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateTitle) {
			Render(c, http.StatusConflict, "post/create.html", gin.H{
				"Error": "A post with that title already exists",
				"Title": "New Post",
				"Form":  gin.H{"Title": title, "Subtitle": subtitle, "Body": body, "ImageURL": imageURL},
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not create post")
		return
	}

	c.Redirect(http.StatusFound, "/post/"+utils.UintToString(post.ID))
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := h.content.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if !h.guard.Can(CurrentUser(c), permissions.ActionEditPost, post) {
		RenderForbidden(c)
		return
	}

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title": "Edit Post",
		"Post":  post,
	})
}

func (h *PostHandler) Update(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	user := CurrentUser(c)

	post, err := h.content.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if !h.guard.Can(user, permissions.ActionEditPost, post) {
		RenderForbidden(c)
		return
	}

	title := c.PostForm("title")
	subtitle := c.PostForm("subtitle")
	body := c.PostForm("body")
	imageURL := c.PostForm("image_url")

	if title == "" || body == "" {
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Error": "Title and body are required",
			"Title": "Edit Post",
			"Post":  post,
		})
		return
	}

	updated, err := h.content.UpdatePost(post.ID, title, subtitle, body, imageURL, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateTitle) {
			Render(c, http.StatusConflict, "post/edit.html", gin.H{
				"Error": "A post with that title already exists",
				"Title": "Edit Post",
				"Post":  post,
			})
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not save post")
		return
	}

	c.Redirect(http.StatusFound, "/post/"+utils.UintToString(updated.ID))
}

func (h *PostHandler) Delete(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	post, err := h.content.GetPost(postID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if !h.guard.Can(CurrentUser(c), permissions.ActionDeletePost, post) {
		RenderForbidden(c)
		return
	}

	if err := h.content.DeletePost(post.ID); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete post")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// CreateComment appends a comment to a post. The route is public so the guard
// decides: anonymous submitters are refused before anything is written.
func (h *PostHandler) CreateComment(c *gin.Context) {
	user := CurrentUser(c)
	if !h.guard.Can(user, permissions.ActionCreateComment, nil) {
		RenderForbidden(c)
		return
	}

	postID := utils.StringToUint(c.Param("id"))
	body := c.PostForm("body")
	if body == "" {
		c.Redirect(http.StatusFound, "/post/"+c.Param("id"))
		return
	}

	if _, err := h.content.AddComment(postID, user.ID, body); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			RenderError(c, http.StatusNotFound, "Post not found")
			return
		}
		RenderError(c, http.StatusInternalServerError, "Could not post comment")
		return
	}

	c.Redirect(http.StatusFound, "/post/"+c.Param("id"))
}
