package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/loandesk_backend/internal/core/ports/services"
	"github.com/SscSPs/loandesk_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// articleHandler handles HTTP requests related to the article inventory.
type articleHandler struct {
	articleService portssvc.ArticleSvcFacade
}

// registerArticleRoutes registers routes related to articles.
func registerArticleRoutes(rg *gin.RouterGroup, articleService portssvc.ArticleSvcFacade) {
	h := &articleHandler{articleService: articleService}

	articles := rg.Group("/articles")
	{
		articles.POST("", h.createArticle)
		articles.GET("", h.listArticles)
		articles.GET("/:article_id", h.getArticle)
		articles.PATCH("/:article_id", h.updateArticle)
		articles.DELETE("/:article_id", h.deleteArticle)
	}
}

// createArticle godoc
// @Summary Register a donated article
// @Tags articles
// @Accept  json
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   article body dto.CreateArticleRequest true "Article details"
// @Success 201 {object} domain.Article
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/articles [post]
func (h *articleHandler) createArticle(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	article, err := h.articleService.CreateArticle(c.Request.Context(), caller, c.Query("agency_id"), req)
	if err != nil {
		respondError(c, err, "Failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// getArticle godoc
// @Summary Get an article
// @Tags articles
// @Produce  json
// @Param   article_id path string true "Article ID"
// @Success 200 {object} domain.Article
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/articles/{article_id} [get]
func (h *articleHandler) getArticle(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	article, err := h.articleService.GetArticle(c.Request.Context(), caller, c.Param("article_id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// listArticles godoc
// @Summary List articles
// @Tags articles
// @Produce  json
// @Param   agency_id query string false "Agency (superadmin only)"
// @Param   status query string false "available, on_loan, maintenance or out_of_service"
// @Param   category query string false "Category"
// @Param   search query string false "Matches name or description"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListArticlesResponse
// @Security BearerAuth
// @Router /api/v1/articles [get]
func (h *articleHandler) listArticles(c *gin.Context) {
	var params dto.ListArticlesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	articles, err := h.articleService.ListArticles(c.Request.Context(), caller, c.Query("agency_id"), params)
	if err != nil {
		respondError(c, err, "Failed to list articles")
		return
	}
	c.JSON(http.StatusOK, dto.ListArticlesResponse{Articles: articles})
}

// updateArticle godoc
// @Summary Update an article
// @Description Status cannot be moved to or from on_loan here; loans and returns do that.
// @Tags articles
// @Accept  json
// @Produce  json
// @Param   article_id path string true "Article ID"
// @Param   article body dto.UpdateArticleRequest true "Fields to change"
// @Success 200 {object} domain.Article
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/v1/articles/{article_id} [patch]
func (h *articleHandler) updateArticle(c *gin.Context) {
	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	article, err := h.articleService.UpdateArticle(c.Request.Context(), caller, c.Param("article_id"), req)
	if err != nil {
		respondError(c, err, "Failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// deleteArticle godoc
// @Summary Delete an article
// @Tags articles
// @Param   article_id path string true "Article ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Article is on loan or has loan history"
// @Security BearerAuth
// @Router /api/v1/articles/{article_id} [delete]
func (h *articleHandler) deleteArticle(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		return
	}
	if err := h.articleService.DeleteArticle(c.Request.Context(), caller, c.Param("article_id")); err != nil {
		respondError(c, err, "Failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}
