package opencodesdk

import "context"

// Session is a convenience handle pairing a client with one session. All
// methods delegate to the client using the session's id.
type Session struct {
	client *Client

	// Info is the session snapshot from when the handle was created or
	// last refreshed.
	Info SessionInfo
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.Info.ID
}

// Send sends a prompt and blocks until the full response is available.
func (s *Session) Send(ctx context.Context, prompt string) (MessageWithParts, error) {
	return s.client.SendMessage(ctx, s.Info.ID, prompt)
}

// SendStream sends a prompt and streams the response's parts.
func (s *Session) SendStream(ctx context.Context, prompt string) *MessageStream {
	return s.client.SendMessageStream(ctx, s.Info.ID, prompt)
}

// Messages returns the session's messages. A limit of 0 returns all.
func (s *Session) Messages(ctx context.Context, limit int) ([]MessageWithParts, error) {
	return s.client.GetMessages(ctx, s.Info.ID, limit)
}

// Abort cancels the session's in-flight generation.
func (s *Session) Abort(ctx context.Context) error {
	return s.client.AbortSession(ctx, s.Info.ID)
}

// Init runs the session's project analysis with the given model.
func (s *Session) Init(ctx context.Context, providerID, modelID string) error {
	return s.client.InitSession(ctx, s.Info.ID, providerID, modelID)
}

// Summarize asks the server to summarize the session.
func (s *Session) Summarize(ctx context.Context, providerID, modelID string) (string, error) {
	return s.client.SummarizeSession(ctx, s.Info.ID, providerID, modelID)
}

// Revert rewinds the session to before the given message and refreshes
// Info.
func (s *Session) Revert(ctx context.Context, messageID, partID string) error {
	info, err := s.client.RevertMessage(ctx, s.Info.ID, messageID, partID)
	if err != nil {
		return err
	}

	s.Info = info

	return nil
}

// Unrevert restores reverted messages and refreshes Info.
func (s *Session) Unrevert(ctx context.Context) error {
	info, err := s.client.UnrevertSession(ctx, s.Info.ID)
	if err != nil {
		return err
	}

	s.Info = info

	return nil
}

// Share publishes the session and refreshes Info; the share URL is in
// Info.ShareURL afterwards.
func (s *Session) Share(ctx context.Context) error {
	info, err := s.client.ShareSession(ctx, s.Info.ID)
	if err != nil {
		return err
	}

	s.Info = info

	return nil
}

// Unshare revokes the session's public share and refreshes Info.
func (s *Session) Unshare(ctx context.Context) error {
	info, err := s.client.UnshareSession(ctx, s.Info.ID)
	if err != nil {
		return err
	}

	s.Info = info

	return nil
}

// Destroy deletes the session on the server. The handle is unusable
// afterwards.
func (s *Session) Destroy(ctx context.Context) error {
	return s.client.DeleteSession(ctx, s.Info.ID)
}
