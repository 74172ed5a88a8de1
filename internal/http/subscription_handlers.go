package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) toggleSubscription(c *gin.Context) error {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		return err
	}
	subscribed, err := h.subscriptions.Toggle(c.Request.Context(), currentUser(c).ID, channelID)
	if err != nil {
		return err
	}

	message := "unsubscribed successfully"
	if subscribed {
		message = "subscribed successfully"
	}
	respond(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, message)
	return nil
}

func (h *Handler) channelSubscribers(c *gin.Context) error {
	channelID, err := pathID(c, "channelId")
	if err != nil {
		return err
	}
	subs, err := h.subscriptions.Subscribers(c.Request.Context(), channelID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, subscribersToResponse(subs), "subscribers fetched successfully")
	return nil
}

func (h *Handler) subscribedChannels(c *gin.Context) error {
	channels, err := h.subscriptions.SubscribedChannels(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		return err
	}
	respond(c, http.StatusOK, subscribersToResponse(channels), "subscribed channels fetched successfully")
	return nil
}
