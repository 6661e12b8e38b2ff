package handlers

import (
	"net/http"
	"strconv"

	"blog/config"
	"blog/models"
	"blog/paginator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"
)

func Index(c *gin.Context) {
	page, err := paginator.Paginate[models.Post](models.PostsQuery(), config.POSTS_PER_PAGE, c.Query("page"), "Author", "Group")
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	render(c, http.StatusOK, "index.tmpl", gin.H{
		"title":    "Latest updates on the site",
		"page_obj": page,
	})
}

func GroupPosts(c *gin.Context) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		dbError(c, err)
		return
	}
	page, err := paginator.Paginate[models.Post](models.PostsInGroup(group.ID), config.POSTS_PER_PAGE, c.Query("page"), "Author", "Group")
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	render(c, http.StatusOK, "group_list.tmpl", gin.H{
		"title":    group.Title,
		"group":    group,
		"page_obj": page,
	})
}

func Profile(c *gin.Context) {
	author, err := models.UserByUsername(c.Param("username"))
	if err != nil {
		dbError(c, err)
		return
	}
	count, err := models.PostCountByAuthor(author.ID)
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	page, err := paginator.Paginate[models.Post](models.PostsByAuthor(author.ID), config.POSTS_PER_PAGE, c.Query("page"), "Author", "Group")
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	render(c, http.StatusOK, "profile.tmpl", gin.H{
		"title":         "Profile of " + author.FullName(),
		"author":        &author,
		"posts_numbers": count,
		"page_obj":      page,
	})
}

func PostDetail(c *gin.Context) {
	post, ok := postFromParam(c)
	if !ok {
		return
	}
	count, err := models.PostCountByAuthor(post.AuthorID)
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	comments, err := models.CommentsFor(post.ID)
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	render(c, http.StatusOK, "post_detail.tmpl", gin.H{
		"title":         "Post " + post.String(),
		"post":          &post,
		"posts_numbers": count,
		"comments":      comments,
		"form":          map[string]string{},
	})
}

// renderPostForm is shared by the create and edit views, post is nil when creating
func renderPostForm(c *gin.Context, post *models.Post, values map[string]string, errs FormErrors) {
	groups, err := models.GroupList()
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	title := "New post"
	if post != nil {
		title = "Edit post"
	}
	render(c, http.StatusOK, "create_post.tmpl", gin.H{
		"title":   title,
		"form":    values,
		"groups":  groups,
		"is_edit": post != nil,
		"post":    post,
		"errors":  errs,
	})
}

// bindPostForm returns the validated form, the group it selects and the uploaded image (if any).
// ok is false when the form was invalid and has been rendered again, or an error was answered.
func bindPostForm(c *gin.Context, post *models.Post) (form PostForm, groupID *uint64, image string, ok bool) {
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	form.Clean()
	groupID, errs, err := form.Validate()
	if err != nil {
		serverError(c, err, DBErrorResponse)
		return
	}
	file, err := formImage(c)
	if err != nil {
		errs.Add("image", err.Error())
	}
	if !errs.Valid() {
		renderPostForm(c, post, form.Values(), errs)
		return
	}
	if file != nil {
		if image, err = saveImage(file); err != nil {
			serverError(c, err, StorageErrorResponse)
			return
		}
	}
	return form, groupID, image, true
}

func PostCreate(c *gin.Context, user *models.User) {
	if c.Request.Method != http.MethodPost {
		renderPostForm(c, nil, map[string]string{}, FormErrors{})
		return
	}
	form, groupID, image, ok := bindPostForm(c, nil)
	if !ok {
		return
	}
	post := models.Post{
		Text:     form.Text,
		AuthorID: user.ID,
		GroupID:  groupID,
		Image:    image,
	}
	if err := models.PostCreate(&post); err != nil {
		deleteFiles(post.Image)
		serverError(c, err, DBErrorResponse)
		return
	}
	if post.Image != "" {
		saveThumb(&post)
		if err := post.Update(); err != nil {
			log.Error().Err(err).Uint64("post", post.ID).Msg("Save thumb")
		}
	}
	log.Info().Uint64("post", post.ID).Str("author", user.Username).Msg("Post created")
	c.Redirect(http.StatusFound, profileURL(user.Username))
}

// PostEdit is only allowed for the author, everybody else is sent back to the post
func PostEdit(c *gin.Context, user *models.User) {
	post, ok := postFromParam(c)
	if !ok {
		return
	}
	if post.AuthorID != user.ID {
		c.Redirect(http.StatusFound, postURL(post.ID))
		return
	}
	if c.Request.Method != http.MethodPost {
		values := map[string]string{"text": post.Text, "group": ""}
		if post.GroupID != nil {
			values["group"] = strconv.FormatUint(*post.GroupID, 10)
		}
		renderPostForm(c, &post, values, FormErrors{})
		return
	}
	form, groupID, image, ok := bindPostForm(c, &post)
	if !ok {
		return
	}
	// The old files go only once the post no longer references them
	oldImage, oldThumb := post.Image, post.Thumb
	replaced := image != "" || form.ImageClear != ""
	if replaced {
		post.Image, post.Thumb = image, ""
	}
	post.Text = form.Text
	post.GroupID = groupID
	if err := post.Update(); err != nil {
		deleteFiles(image)
		serverError(c, err, DBErrorResponse)
		return
	}
	if replaced {
		deleteFiles(oldImage, oldThumb)
	}
	// New image, or an older one whose thumb failed
	if post.Image != "" && post.Thumb == "" {
		saveThumb(&post)
		if err := post.Update(); err != nil {
			log.Error().Err(err).Uint64("post", post.ID).Msg("Save thumb")
		}
	}
	c.Redirect(http.StatusFound, postURL(post.ID))
}
