package index

import "net/http"

const page = `<!doctype html>
<html>
<head><title>sudoduel</title></head>
<body>
<h1>sudoduel</h1>
<ul>
<li>GET  /v1/bands</li>
<li>GET  /v1/generate?band=medium[&amp;seed=12345 | &amp;code=medium:12345][&amp;solution=1]</li>
<li>POST /v1/solve {"grid": "81 chars, 0 for empty"}</li>
<li>GET|POST /v1/sim?band=medium&amp;round=1000[&amp;seed=42]</li>
</ul>
</body>
</html>`

func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}
