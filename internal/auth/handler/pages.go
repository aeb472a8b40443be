package handler

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

var appOpenTmpl = template.Must(template.New("app-open").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Login Successful</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 20px; }
        .success { color: #4CAF50; }
        .instructions { margin: 20px 0; }
        button { background: #836FFF; color: white; border: none; padding: 10px 20px; border-radius: 5px; cursor: pointer; }
    </style>
</head>
<body>
    <h1 class="success">&#9989; Login Successful!</h1>
    <p>Redirecting to Conni app...</p>
    <div class="instructions">
        <button onclick="openApp()">Open Conni App</button>
    </div>
    <p><small>If the app doesn't open, please return to the Conni app manually.</small></p>

    <script>
        var redirectURL = {{.RedirectURL}};

        function openApp() {
            window.location.href = redirectURL;

            var iframe = document.createElement('iframe');
            iframe.style.display = 'none';
            iframe.src = redirectURL;
            document.body.appendChild(iframe);

            setTimeout(function() {
                document.body.removeChild(iframe);
            }, 1000);
        }

        setTimeout(openApp, 500);

        setTimeout(function() {
            document.querySelector('.instructions').innerHTML =
                '<p><strong>If the app didn\'t open automatically:</strong></p>' +
                '<ol style="text-align: left; max-width: 300px; margin: 0 auto;">' +
                '<li>Return to the Conni app</li>' +
                '<li>You should be logged in automatically</li>' +
                '<li>If not, try the UCL login again</li>' +
                '</ol>';
        }, 5000);
    </script>
</body>
</html>
`))

var successTmpl = template.Must(template.New("success").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>UCL {{.Title}} Successful</title>
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: Arial, sans-serif; text-align: center; padding: 20px; }
        .success { color: #4CAF50; }
        .action { color: #1E40AF; font-size: 18px; margin: 10px 0; }
        .token { background: #f5f5f5; padding: 10px; border-radius: 5px; word-break: break-all; font-family: monospace; margin: 10px 0; }
        .copy-btn {
            background: #836FFF;
            color: white;
            border: none;
            padding: 10px 20px;
            border-radius: 5px;
            cursor: pointer;
            font-size: 16px;
            margin: 10px 0;
        }
        .copy-btn:hover { background: #6B46C1; }
        .copied { background: #4CAF50 !important; }
    </style>
</head>
<body>
    <h1 class="success">&#9989; UCL {{.Title}} Successful!</h1>
    <p class="action">{{.ActionText}}</p>
    <p>{{.Description}}</p>
    <p><strong>Token:</strong></p>
    <div class="token" id="token">{{.Token}}</div>
    <button class="copy-btn" onclick="copyToken()">&#128203; Copy Token to Clipboard</button>
    <p><small>Copy this token and paste it in the Conni app to complete your {{.Action}}.</small></p>

    <script>
        function copyToken() {
            var tokenElement = document.getElementById('token');
            var token = tokenElement.textContent;

            navigator.clipboard.writeText(token).then(function() {
                var btn = document.querySelector('.copy-btn');
                var originalText = btn.textContent;
                btn.textContent = '✅ Copied!';
                btn.classList.add('copied');

                setTimeout(function() {
                    btn.textContent = originalText;
                    btn.classList.remove('copied');
                }, 2000);
            }).catch(function(err) {
                alert('Failed to copy token. Please manually select and copy the token above.');
            });
        }

        window.onload = function() {
            setTimeout(copyToken, 1000);
        };
    </script>
</body>
</html>
`))

func (h *Handler) renderAppOpenPage(c *gin.Context, redirectURL string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := appOpenTmpl.Execute(c.Writer, gin.H{"RedirectURL": redirectURL}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
	}
}

func (h *Handler) success(c *gin.Context) {
	token := c.Query("token")
	action := c.DefaultQuery("action", "login")

	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token provided"})
		return
	}

	data := gin.H{
		"Token":  token,
		"Action": action,
	}
	if action == "signup" {
		data["Title"] = "Signup"
		data["ActionText"] = "Welcome to Conni!"
		data["Description"] = "Your UCL account has been created successfully."
	} else {
		data["Title"] = "Login"
		data["ActionText"] = "Welcome back!"
		data["Description"] = "You've successfully logged in with UCL."
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := successTmpl.Execute(c.Writer, data); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render page"})
	}
}
