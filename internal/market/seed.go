package market

import "skillora/internal/model"

// DefaultClientID owns the seed jobs. GetMyJobs always includes its jobs so a
// fresh client dashboard is never empty.
const DefaultClientID = "client_default"

// SeedJobs returns a fresh copy of the initial job list.
func SeedJobs() []model.Job {
	return []model.Job{
		{
			ID:             "job_1",
			ClientID:       DefaultClientID,
			Title:          "E-Commerce Website Redesign",
			Description:    "We are looking for an experienced web designer to completely overhaul our Shopify store. The goal is to improve conversion rates and modernize the UI. Must have a strong portfolio in fashion e-commerce.",
			Budget:         "Rs 2,500",
			Type:           model.JobTypeFixedPrice,
			Level:          model.LevelExpert,
			PostedTime:     "2 hours ago",
			Tags:           []string{"Shopify", "UI/UX", "Figma"},
			ClientRating:   5.0,
			ReviewCount:    12,
			Verified:       true,
			ProposalsCount: 3,
			Status:         model.JobStatusOpen,
		},
		{
			ID:             "job_2",
			ClientID:       DefaultClientID,
			Title:          "Python Script for Data Analysis",
			Description:    "Need a Python developer to write a script that scrapes data from 3 specific websites and outputs it into a structured CSV. The script needs to run daily on a cron job.",
			Budget:         "Rs 500/hr",
			Type:           model.JobTypeHourly,
			Level:          model.LevelIntermediate,
			PostedTime:     "5 hours ago",
			Tags:           []string{"Python", "Web Scraping", "Data Mining"},
			ClientRating:   4.8,
			ReviewCount:    45,
			Verified:       true,
			ProposalsCount: 8,
			Status:         model.JobStatusOpen,
		},
		{
			ID:             "job_3",
			ClientID:       DefaultClientID,
			Title:          "Social Media Content Creator",
			Description:    "Looking for a creative individual to design 10 Instagram posts for a new coffee brand. Assets will be provided. Great opportunity for someone building their portfolio.",
			Budget:         "Rs 2,000",
			Type:           model.JobTypeFixedPrice,
			Level:          model.LevelEntry,
			PostedTime:     "1 day ago",
			Tags:           []string{"Canva", "Instagram", "Graphic Design"},
			ClientRating:   0,
			ReviewCount:    0,
			Verified:       false,
			ProposalsCount: 1,
			Status:         model.JobStatusOpen,
		},
	}
}

// SeedContacts returns a fresh copy of the initial contact directory.
func SeedContacts() []model.ChatContact {
	return []model.ChatContact{
		{
			ID:              "c1",
			Name:            "Arjeet Kumar",
			Role:            "UI Designer",
			Avatar:          "https://i.pravatar.cc/150?u=ella_pro",
			IsOnline:        true,
			LastMessage:     "Glad you liked it! I was thinking we could...",
			LastMessageTime: "10:05 AM",
		},
		{
			ID:              "c2",
			Name:            "Kashish Kumari",
			Role:            "Client",
			Avatar:          "https://i.pravatar.cc/150?u=david_dev",
			IsOnline:        false,
			LastMessage:     "Thanks for the update, I'll push the...",
			LastMessageTime: "2h ago",
		},
	}
}

// SeedMessages returns a fresh copy of the initial chat threads keyed by contact id.
func SeedMessages() map[string][]model.Message {
	return map[string][]model.Message{
		"c1": {
			{
				ID:        "m1",
				SenderID:  "c1",
				Text:      "Hi! I've just uploaded the updated wireframes for the dashboard. Let me know what you think about the new navigation layout.",
				Timestamp: "Yesterday 4:20 PM",
				IsMe:      false,
			},
			{
				ID:        "m2",
				SenderID:  "me",
				Text:      "Thanks Arjeet! Looking at them right now. The sidebar changes look much cleaner.",
				Timestamp: "Yesterday 4:25 PM",
				IsMe:      true,
			},
		},
	}
}
