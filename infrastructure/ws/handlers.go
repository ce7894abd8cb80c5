package ws

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/errors"
	"chat-hall/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Handler struct {
	log           *slog.Logger
	auth          services.IAuthService
	chats         services.IChatService
	subscriptions services.ISubscriptionService
	admin         services.IAdminService
	registry      contract.IConnectionRegistry
}

func NewHandler(log *slog.Logger, auth services.IAuthService, chats services.IChatService,
	subscriptions services.ISubscriptionService, admin services.IAdminService,
	registry contract.IConnectionRegistry) *Handler {
	return &Handler{
		log:           log,
		auth:          auth,
		chats:         chats,
		subscriptions: subscriptions,
		admin:         admin,
		registry:      registry,
	}
}

func abortWith(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errors.MapToHTTPStatus(err), gin.H{"error": err.Error()})
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	NickName string `json:"nickName"`
	Avatar   []byte `json:"avatar,omitempty"` // base64 in transit
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	NickName  string `json:"nickName"`
	IsAdmin   bool   `json:"isAdmin"`
	HasAvatar bool   `json:"hasProfilePicture"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        uint64(u.ID),
		Email:     u.Email,
		Username:  u.Username,
		NickName:  u.NickName,
		IsAdmin:   u.IsAdmin,
		HasAvatar: u.HasAvatar(),
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
		NickName: req.NickName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user), "token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "token": token})
}

func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, token, err := h.auth.AdminLogin(req.Username, req.Password)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "token": token})
}

func (h *Handler) Profile(c *gin.Context) {
	user, err := h.auth.Profile(callerID(c))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// Avatar serves the raw profile picture bytes; the content type is
// sniffed by the browser.
func (h *Handler) Avatar(c *gin.Context) {
	user, err := h.auth.Profile(callerID(c))
	if err != nil {
		abortWith(c, err)
		return
	}
	if !user.HasAvatar() {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(user.Avatar), user.Avatar)
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
	NickName string `json:"nickName"`
	Avatar   []byte `json:"avatar,omitempty"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.auth.UpdateProfile(callerID(c), services.UpdateProfileInput{
		Username: req.Username,
		Password: req.Password,
		NickName: req.NickName,
		Avatar:   req.Avatar,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type chatResponse struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	State     string `json:"state"`
	StartedAt string `json:"startedAt,omitempty"`
	EndedAt   string `json:"endedAt,omitempty"`
}

func toChatResponse(chat domain.Chat) chatResponse {
	resp := chatResponse{
		ID:    uint64(chat.ID),
		Name:  chat.Name,
		State: string(chat.State()),
	}
	if chat.StartedAt != nil {
		resp.StartedAt = chat.StartedAt.Format(event.TimeLayout)
	}
	if chat.EndedAt != nil {
		resp.EndedAt = chat.EndedAt.Format(event.TimeLayout)
	}
	return resp
}

func (h *Handler) ListChats(c *gin.Context) {
	chats, err := h.chats.AllChats()
	if err != nil {
		abortWith(c, err)
		return
	}
	resp := make([]chatResponse, 0, len(chats))
	for _, chat := range chats {
		resp = append(resp, toChatResponse(chat))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ActiveChat(c *gin.Context) {
	chat, err := h.chats.ActiveChat()
	if err != nil {
		abortWith(c, err)
		return
	}
	if chat == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, toChatResponse(*chat))
}

func (h *Handler) Subscribe(c *gin.Context) {
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	sub, err := h.subscriptions.Subscribe(c.Request.Context(), callerID(c), chatID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatId": uint64(sub.ChatID), "subscribed": sub.IsActive})
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	if err := h.subscriptions.Unsubscribe(c.Request.Context(), callerID(c), chatID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chatId": uint64(chatID), "subscribed": false})
}

func (h *Handler) Join(c *gin.Context) {
	chat, err := h.chats.JoinChat(c.Request.Context(), callerID(c))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toChatResponse(chat))
}

func (h *Handler) Leave(c *gin.Context) {
	if err := h.chats.LeaveChat(c.Request.Context(), callerID(c)); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type messageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.chats.SendMessage(c.Request.Context(), callerID(c), req.Text); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

type createChatRequest struct {
	Name string `json:"name"`
}

func (h *Handler) CreateChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chat, err := h.chats.CreateChat(c.Request.Context(), req.Name)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChatResponse(chat))
}

func (h *Handler) StartChat(c *gin.Context) {
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	chat, err := h.chats.StartChat(c.Request.Context(), chatID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toChatResponse(chat))
}

func (h *Handler) EndChat(c *gin.Context) {
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	chat, err := h.chats.EndChat(c.Request.Context(), chatID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toChatResponse(chat))
}

func (h *Handler) DeleteChat(c *gin.Context) {
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	if err := h.admin.DeleteChat(chatID); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListChatSummaries(c *gin.Context) {
	summaries, err := h.admin.ListChats()
	if err != nil {
		abortWith(c, err)
		return
	}
	type summaryResponse struct {
		chatResponse
		Subscribers int `json:"subscribers"`
	}
	resp := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp = append(resp, summaryResponse{
			chatResponse: toChatResponse(s.Chat),
			Subscribers:  s.Subscribers,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers()
	if err != nil {
		abortWith(c, err)
		return
	}
	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RemoveUser(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		return
	}
	if err := h.admin.RemoveUser(c.Request.Context(), userID); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PromoteAdmin(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		return
	}
	user, err := h.admin.PromoteAdmin(userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) DemoteAdmin(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		return
	}
	user, err := h.admin.DemoteAdmin(userID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *Handler) ForceSubscribe(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		return
	}
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	if err := h.admin.ForceSubscribe(c.Request.Context(), userID, chatID); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ForceUnsubscribe(c *gin.Context) {
	userID, err := pathUserID(c)
	if err != nil {
		return
	}
	chatID, err := pathChatID(c)
	if err != nil {
		return
	}
	if err := h.admin.ForceUnsubscribe(c.Request.Context(), userID, chatID); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ServeEvents upgrades the connection and registers the caller's sink so
// the broadcaster can reach them. The read loop exists only to detect the
// client going away; all pushes flow through the write pump.
func (h *Handler) ServeEvents(c *gin.Context) {
	h.serveSink(c, false)
}

// ServeAdminEvents is ServeEvents for the admin event stream; the route
// is gated by RequireAdmin.
func (h *Handler) ServeAdminEvents(c *gin.Context) {
	h.serveSink(c, true)
}

func (h *Handler) serveSink(c *gin.Context, asAdmin bool) {
	userID := callerID(c)
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "upgrade failed"})
		return
	}

	sink := NewSink(h.log, conn)
	if asAdmin {
		h.registry.RegisterAdmin(userID, sink)
	} else {
		h.registry.RegisterUser(userID, sink)
	}
	h.log.Info("client connected",
		slog.Uint64("user_id", uint64(userID)), slog.Bool("admin", asAdmin))

	go sink.WritePump()
	h.readUntilClosed(conn)

	// Only remove our own sink: a reconnect may already have replaced it,
	// and the replacement must survive this connection's cleanup.
	if asAdmin {
		h.registry.UnregisterAdminIf(userID, sink)
	} else {
		h.registry.UnregisterUserIf(userID, sink)
	}
	sink.Close()
	h.log.Info("client disconnected",
		slog.Uint64("user_id", uint64(userID)), slog.Bool("admin", asAdmin))
}

func (h *Handler) readUntilClosed(conn *websocket.Conn) {
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("read failed", slog.Any("error", err))
			}
			return
		}
	}
}

func pathChatID(c *gin.Context) (domain.ChatID, error) {
	id, err := strconv.ParseUint(c.Param("chatId"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return 0, err
	}
	return domain.ChatID(id), nil
}

func pathUserID(c *gin.Context) (domain.UserID, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, err
	}
	return domain.UserID(id), nil
}
