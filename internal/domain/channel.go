package domain

// ChannelProfile is a channel as seen by a particular viewer.
type ChannelProfile struct {
	ID                        int64
	Username                  string
	Email                     string
	FullName                  string
	Avatar                    string
	CoverImage                string
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// ChannelStats aggregates a channel's dashboard counters.
type ChannelStats struct {
	TotalVideos      int64
	TotalViews       int64
	TotalLikes       int64
	TotalSubscribers int64
}
