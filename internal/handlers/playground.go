package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GraphiQL page pointed at the query endpoint and the subscription socket.
const playgroundHTML = `<!DOCTYPE html>
<html>
  <head>
    <title>Library GraphiQL</title>
    <style>body { margin: 0; } #graphiql { height: 100vh; }</style>
    <link rel="stylesheet" href="https://unpkg.com/graphiql/graphiql.min.css" />
  </head>
  <body>
    <div id="graphiql">Loading...</div>
    <script src="https://unpkg.com/react@18/umd/react.production.min.js"></script>
    <script src="https://unpkg.com/react-dom@18/umd/react-dom.production.min.js"></script>
    <script src="https://unpkg.com/graphiql/graphiql.min.js"></script>
    <script src="https://unpkg.com/graphql-ws/umd/graphql-ws.min.js"></script>
    <script>
      const wsProto = location.protocol === "https:" ? "wss:" : "ws:";
      const fetcher = GraphiQL.createFetcher({
        url: "/graphql",
        wsClient: graphqlWs.createClient({ url: wsProto + "//" + location.host + "/subscriptions" }),
      });
      ReactDOM.createRoot(document.getElementById("graphiql")).render(
        React.createElement(GraphiQL, { fetcher: fetcher })
      );
    </script>
  </body>
</html>`

func (h *Handler) playground(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(playgroundHTML))
}
