package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Web dashboard
// @Description HTML dashboard that fetches /api/stats and /api/incidents client-side
// @Tags System
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /dashboard [get]
func (h *Handler) dashboard(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(dashboardHTML))
}

// The page is served as-is: its inline script uses JavaScript template
// literals, so it is deliberately not a Go template.
const dashboardHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Rhino Watch SA Dashboard</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background: white;
            padding: 20px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        .header {
            text-align: center;
            color: #2c3e50;
            margin-bottom: 30px;
        }
        .stats {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(200px, 1fr));
            gap: 20px;
            margin-bottom: 30px;
        }
        .stat-card {
            background: #2ecc71;
            color: white;
            padding: 20px;
            border-radius: 8px;
            text-align: center;
        }
        .stat-number {
            font-size: 2em;
            font-weight: bold;
        }
        .incidents {
            margin-top: 30px;
        }
        .incident {
            border: 1px solid #ddd;
            margin: 10px 0;
            padding: 15px;
            border-radius: 5px;
            background: #f9f9f9;
        }
        .incident-title {
            font-weight: bold;
            color: #2c3e50;
        }
        .incident-meta {
            color: #7f8c8d;
            font-size: 0.9em;
            margin-top: 5px;
        }
        .verified {
            background: #2ecc71;
            color: white;
            padding: 2px 8px;
            border-radius: 3px;
            font-size: 0.8em;
        }
        .unverified {
            background: #e74c3c;
            color: white;
            padding: 2px 8px;
            border-radius: 3px;
            font-size: 0.8em;
        }
        .loading {
            text-align: center;
            color: #7f8c8d;
        }
        .api-info {
            background: #ecf0f1;
            padding: 15px;
            border-radius: 5px;
            margin-top: 20px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🦏 Rhino Watch SA Dashboard</h1>
            <p>Monitoring rhino poaching incidents in South Africa</p>
        </div>

        <div class="stats" id="stats">
            <div class="loading">Loading statistics...</div>
        </div>

        <div class="incidents">
            <h2>Recent Incidents</h2>
            <div id="incidents">
                <div class="loading">Loading incidents...</div>
            </div>
        </div>

        <div class="api-info">
            <h3>API Endpoints</h3>
            <ul>
                <li><strong>GET /api/stats</strong> - Dashboard statistics</li>
                <li><strong>GET /api/incidents</strong> - List all incidents</li>
                <li><strong>GET /api/incidents/{id}</strong> - Get specific incident</li>
                <li><strong>POST /api/auth/login</strong> - User authentication</li>
                <li><strong>GET /health</strong> - Health check</li>
            </ul>
        </div>
    </div>

    <script>
        const API_BASE = window.location.origin;

        fetch(API_BASE + '/api/stats')
            .then(response => response.json())
            .then(data => {
                const statsContainer = document.getElementById('stats');
                statsContainer.innerHTML = ` + "`" + `
                    <div class="stat-card">
                        <div class="stat-number">${data.total_incidents}</div>
                        <div>Total Incidents</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">${data.verified_incidents}</div>
                        <div>Verified Incidents</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">${data.total_rhinos_affected}</div>
                        <div>Rhinos Affected</div>
                    </div>
                    <div class="stat-card">
                        <div class="stat-number">${data.recent_incidents}</div>
                        <div>Recent (30 days)</div>
                    </div>
                ` + "`" + `;
            })
            .catch(error => {
                console.error('Error loading stats:', error);
                document.getElementById('stats').innerHTML = '<div class="loading">Error loading statistics</div>';
            });

        fetch(API_BASE + '/api/incidents?limit=10')
            .then(response => response.json())
            .then(data => {
                const incidentsContainer = document.getElementById('incidents');
                if (data.length === 0) {
                    incidentsContainer.innerHTML = '<div class="loading">No incidents found</div>';
                    return;
                }

                incidentsContainer.innerHTML = data.map(incident => ` + "`" + `
                    <div class="incident">
                        <div class="incident-title">${incident.title}</div>
                        <div class="incident-meta">
                            📍 ${incident.location}, ${incident.province} |
                            📅 ${incident.date_occurred} |
                            📊 ${incident.rhino_count} rhino(s) affected |
                            <span class="${incident.verified ? 'verified' : 'unverified'}">
                                ${incident.verified ? 'Verified' : 'Unverified'}
                            </span>
                        </div>
                        ${incident.description ? ` + "`" + `<div style="margin-top: 10px;">${incident.description}</div>` + "`" + ` : ''}
                    </div>
                ` + "`" + `).join('');
            })
            .catch(error => {
                console.error('Error loading incidents:', error);
                document.getElementById('incidents').innerHTML = '<div class="loading">Error loading incidents</div>';
            });
    </script>
</body>
</html>
`
