package httpx

import (
	"net/http"
)

// NoopHTTPDelegate records every request and answers with Res.
type NoopHTTPDelegate struct {
	reqs []*http.Request
	Res  *http.Response
}

func (n *NoopHTTPDelegate) Do(req *http.Request) (*http.Response, error) {
	n.reqs = append(n.reqs, req)
	return n.Res, nil
}

func (n *NoopHTTPDelegate) GetRequest() *http.Request {
	if len(n.reqs) == 0 {
		return nil
	}
	return n.reqs[len(n.reqs)-1]
}

func (n *NoopHTTPDelegate) GetRequests() []*http.Request {
	return n.reqs
}
