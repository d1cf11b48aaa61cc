package api

// Request bodies for the fixed stateful endpoints. Validation tags are
// enforced by the server's shared validator instance.

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret,omitempty"`
	GrantType    string `json:"grant_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

type createBucketRequest struct {
	BucketKey string `json:"bucketKey" validate:"required"`
	PolicyKey string `json:"policyKey" validate:"omitempty,oneof=transient temporary persistent"`
}

type translationJobRequest struct {
	Input struct {
		URN string `json:"urn" validate:"required"`
	} `json:"input"`
	Output struct {
		Formats []struct {
			Type  string   `json:"type"`
			Views []string `json:"views,omitempty"`
		} `json:"formats"`
	} `json:"output"`
}

type createIssueRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type createHookRequest struct {
	CallbackURL string `json:"callbackUrl" validate:"omitempty,url"`
	Scope       struct {
		Folder  string `json:"folder,omitempty"`
		Project string `json:"project,omitempty"`
	} `json:"scope"`
}
