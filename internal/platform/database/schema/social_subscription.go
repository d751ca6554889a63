// Copyright (c) 2026 Vidora. All rights reserved.

package schema

// SocialSubscriptionTable represents the 'social.subscription' table
type SocialSubscriptionTable struct {
	Table        string
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    string
}

// SocialSubscription is the schema definition for social.subscription
var SocialSubscription = SocialSubscriptionTable{
	Table:        "social.subscription",
	ID:           "id",
	SubscriberID: "subscriberid",
	ChannelID:    "channelid",
	CreatedAt:    "createdat",
}

func (t SocialSubscriptionTable) Columns() []string {
	return []string{t.ID, t.SubscriberID, t.ChannelID, t.CreatedAt}
}
