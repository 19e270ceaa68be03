package console

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Template functions available in all templates.
var templateFuncs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02 15:04:05")
	},
	"formatDate": func(s string) string {
		if s == "" {
			return "-"
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Format("02/01/2006 15:04")
		}
		return s
	},
	"money": func(v float64) string {
		return humanize.CommafWithDigits(v, 2) + " Ar"
	},
	"surface": func(v float64) string {
		return humanize.CommafWithDigits(v, 1) + " m²"
	},
	"moneyPtr": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return humanize.CommafWithDigits(*v, 2) + " Ar"
	},
	"surfacePtr": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return humanize.CommafWithDigits(*v, 1) + " m²"
	},
	"count": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"percent": func(v float64) string {
		return fmt.Sprintf("%.1f%%", v)
	},
	"statusColor": func(status string) string {
		switch strings.ToUpper(status) {
		case "NOUVEAU":
			return "blue"
		case "EN_COURS", "EN COURS":
			return "yellow"
		case "TERMINE", "TERMINÉ":
			return "green"
		case "REJETE", "REJETÉ":
			return "red"
		default:
			return "gray"
		}
	},
	"validationColor": func(status string) string {
		switch strings.ToUpper(status) {
		case "EN_ATTENTE":
			return "yellow"
		case "APPROUVE", "APPROUVÉ":
			return "green"
		case "REJETE", "REJETÉ":
			return "red"
		default:
			return "gray"
		}
	},
	"truncate": func(s string, n int) string {
		if len(s) <= n {
			return s
		}
		return s[:n] + "..."
	},
	"coord": func(v float64) string {
		return fmt.Sprintf("%.5f", v)
	},
}

// renderTemplate renders a named page template inside the layout.
func renderTemplate(w io.Writer, name string, data map[string]any) error {
	content, ok := templates[name]
	if !ok {
		return fmt.Errorf("template not found: %s", name)
	}

	layout, ok := templates["layout"]
	if !ok {
		return fmt.Errorf("layout template not found")
	}

	tmpl, err := template.New("layout").Funcs(templateFuncs).Parse(layout)
	if err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}

	if _, err := tmpl.New("content").Parse(content); err != nil {
		return fmt.Errorf("parse content: %w", err)
	}

	return tmpl.Execute(w, data)
}

// templates holds all template content.
var templates = map[string]string{
	"layout": `<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <script src="https://cdn.tailwindcss.com"></script>
</head>
<body class="bg-gray-50 min-h-screen">
    {{if .Session}}
    <nav class="bg-white shadow-sm border-b">
        <div class="max-w-7xl mx-auto px-4">
            <div class="flex justify-between h-16">
                <div class="flex">
                    <a href="/" class="flex items-center px-2 py-2 text-xl font-bold text-indigo-600">Voirie</a>
                    {{if .Session.IsManager}}
                    <div class="hidden sm:ml-6 sm:flex sm:space-x-8">
                        <a href="/dashboard" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Tableau de bord</a>
                        <a href="/signalements" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Signalements</a>
                        <a href="/validation" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Validation</a>
                        <a href="/users" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Utilisateurs</a>
                        <a href="/sync" class="text-gray-500 hover:text-gray-700 inline-flex items-center px-1 pt-1 text-sm font-medium">Synchronisation</a>
                    </div>
                    {{end}}
                </div>
                <div class="flex items-center space-x-4">
                    <span class="text-sm text-gray-600">{{.Session.Username}}</span>
                    <a href="/logout" class="text-sm text-red-600 hover:text-red-800">Déconnexion</a>
                </div>
            </div>
        </div>
    </nav>
    {{end}}
    <main class="max-w-7xl mx-auto px-4 py-8">
        {{template "content" .}}
    </main>
</body>
</html>`,

	"landing": `<div class="text-center py-16">
    <h1 class="text-4xl font-bold text-gray-900">Voirie</h1>
    <p class="mt-4 text-lg text-gray-600">Signalement et suivi des dégradations de la chaussée.</p>
    {{if .Session}}
        {{if .Session.IsManager}}
        <a href="/dashboard" class="mt-8 inline-block bg-indigo-600 text-white px-6 py-3 rounded-md font-medium">Accéder au tableau de bord</a>
        {{else}}
        <p class="mt-8 text-gray-500">Votre compte ne donne pas accès à la console de gestion.</p>
        {{end}}
    {{else}}
    <a href="/login" class="mt-8 inline-block bg-indigo-600 text-white px-6 py-3 rounded-md font-medium">Connexion</a>
    {{end}}
</div>`,

	"login": `<div class="max-w-md mx-auto mt-16 bg-white p-8 rounded-lg shadow">
    <h1 class="text-2xl font-bold text-gray-900 mb-6">Connexion</h1>
    {{if .Error}}
    <div class="mb-4 p-3 bg-red-50 border border-red-200 text-red-700 rounded text-sm">{{.Error}}</div>
    {{end}}
    <form method="POST" action="/login" class="space-y-4">
        <div>
            <label class="block text-sm font-medium text-gray-700">Email ou nom d'utilisateur</label>
            <input type="text" name="identifier" required class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2">
        </div>
        <div>
            <label class="block text-sm font-medium text-gray-700">Mot de passe</label>
            <input type="password" name="password" required class="mt-1 block w-full border border-gray-300 rounded-md px-3 py-2">
        </div>
        <button type="submit" class="w-full bg-indigo-600 text-white py-2 rounded-md font-medium">Se connecter</button>
    </form>
</div>`,

	"dashboard": `<h1 class="text-2xl font-bold text-gray-900 mb-6">Tableau de bord</h1>
<div class="grid grid-cols-1 sm:grid-cols-2 lg:grid-cols-4 gap-4 mb-8">
    <div class="bg-white p-5 rounded-lg shadow">
        <div class="text-sm text-gray-500">Signalements</div>
        <div class="text-3xl font-bold">{{count .Stats.TotalPoints}}</div>
    </div>
    <div class="bg-white p-5 rounded-lg shadow">
        <div class="text-sm text-gray-500">Surface totale</div>
        <div class="text-3xl font-bold">{{surface .Stats.TotalSurfaceArea}}</div>
    </div>
    <div class="bg-white p-5 rounded-lg shadow">
        <div class="text-sm text-gray-500">Budget total</div>
        <div class="text-3xl font-bold">{{money .Stats.TotalBudget}}</div>
    </div>
    <div class="bg-white p-5 rounded-lg shadow">
        <div class="text-sm text-gray-500">Avancement</div>
        <div class="text-3xl font-bold">{{percent .Stats.ProgressPercent}}</div>
    </div>
</div>
<div class="grid grid-cols-3 gap-4 mb-8">
    <div class="bg-blue-50 p-4 rounded-lg text-center">
        <div class="text-sm text-blue-700">Nouveau</div>
        <div class="text-2xl font-bold text-blue-900">{{count .Stats.CountNouveau}}</div>
    </div>
    <div class="bg-yellow-50 p-4 rounded-lg text-center">
        <div class="text-sm text-yellow-700">En cours</div>
        <div class="text-2xl font-bold text-yellow-900">{{count .Stats.CountEnCours}}</div>
    </div>
    <div class="bg-green-50 p-4 rounded-lg text-center">
        <div class="text-sm text-green-700">Terminé</div>
        <div class="text-2xl font-bold text-green-900">{{count .Stats.CountTermine}}</div>
    </div>
</div>
{{if .Stats.StatusStats}}
<div class="bg-white rounded-lg shadow overflow-hidden mb-8">
    <h2 class="px-6 py-4 text-lg font-medium border-b">Répartition par statut</h2>
    <table class="min-w-full divide-y divide-gray-200">
        <thead class="bg-gray-50">
            <tr>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Statut</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Nombre</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Surface</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Budget</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Part</th>
            </tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Stats.StatusStats}}
            <tr>
                <td class="px-6 py-4 text-sm">{{.StatusName}}</td>
                <td class="px-6 py-4 text-sm">{{count .Count}}</td>
                <td class="px-6 py-4 text-sm">{{surface .TotalSurface}}</td>
                <td class="px-6 py-4 text-sm">{{money .TotalBudget}}</td>
                <td class="px-6 py-4 text-sm">{{percent .Percentage}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
</div>
{{end}}
<p class="text-sm text-gray-400">Délai moyen de traitement : {{printf "%.1f" .Stats.AverageTreatmentDays}} jours · Uptime {{.Uptime}}</p>`,

	"signalements/list": `<div class="flex justify-between items-center mb-6">
    <h1 class="text-2xl font-bold text-gray-900">Signalements</h1>
    <form method="GET" class="flex space-x-2">
        <select name="status" class="border border-gray-300 rounded-md px-3 py-1 text-sm">
            <option value="">Tous</option>
            <option value="NOUVEAU" {{if eq .StatusFilter "NOUVEAU"}}selected{{end}}>Nouveau</option>
            <option value="EN_COURS" {{if eq .StatusFilter "EN_COURS"}}selected{{end}}>En cours</option>
            <option value="TERMINE" {{if eq .StatusFilter "TERMINE"}}selected{{end}}>Terminé</option>
        </select>
        <button type="submit" class="bg-gray-200 px-3 py-1 rounded-md text-sm">Filtrer</button>
    </form>
</div>
<div class="bg-white rounded-lg shadow overflow-hidden">
    <table class="min-w-full divide-y divide-gray-200">
        <thead class="bg-gray-50">
            <tr>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">#</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Description</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Position</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Statut</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Surface</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Budget</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Entreprise</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Date</th>
            </tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Signalements}}
            <tr>
                <td class="px-6 py-4 text-sm text-gray-500">{{.ID}}</td>
                <td class="px-6 py-4 text-sm">{{truncate .Description 60}}</td>
                <td class="px-6 py-4 text-sm text-gray-500">{{coord .Latitude}}, {{coord .Longitude}}</td>
                <td class="px-6 py-4 text-sm"><span class="px-2 py-1 rounded-full text-xs bg-{{statusColor .Status.Name}}-100 text-{{statusColor .Status.Name}}-800">{{.Status.Name}}</span></td>
                <td class="px-6 py-4 text-sm">{{surfacePtr .SurfaceArea}}</td>
                <td class="px-6 py-4 text-sm">{{moneyPtr .Budget}}</td>
                <td class="px-6 py-4 text-sm">{{if .Entreprise}}{{.Entreprise.Name}}{{else}}-{{end}}</td>
                <td class="px-6 py-4 text-sm text-gray-500">{{formatDate .DateSignalement}}</td>
            </tr>
            {{else}}
            <tr><td colspan="8" class="px-6 py-8 text-center text-gray-400">Aucun signalement.</td></tr>
            {{end}}
        </tbody>
    </table>
</div>`,

	"validation/queue": `<h1 class="text-2xl font-bold text-gray-900 mb-6">File de validation</h1>
{{if .Error}}<div class="mb-4 p-3 bg-red-50 border border-red-200 text-red-700 rounded text-sm">{{.Error}}</div>{{end}}
{{if .Info}}<div class="mb-4 p-3 bg-green-50 border border-green-200 text-green-700 rounded text-sm">{{.Info}}</div>{{end}}
<div class="space-y-4">
    {{range .Signalements}}
    <div class="bg-white rounded-lg shadow p-6">
        <div class="flex justify-between">
            <div>
                <div class="font-medium">#{{.ID}} — {{truncate .Description 100}}</div>
                <div class="text-sm text-gray-500 mt-1">{{coord .Latitude}}, {{coord .Longitude}} · {{formatDate .DateSignalement}} · par {{.User.Username}}</div>
                {{if .Validation}}
                <div class="text-sm mt-1"><span class="px-2 py-1 rounded-full text-xs bg-{{validationColor .Validation.Status.Name}}-100 text-{{validationColor .Validation.Status.Name}}-800">{{.Validation.Status.Name}}</span></div>
                {{end}}
            </div>
            <form method="POST" action="/signalements/{{.ID}}/validate" class="flex items-start space-x-2">
                <select name="status_id" class="border border-gray-300 rounded-md px-2 py-1 text-sm">
                    {{range $.Statuses}}
                    <option value="{{.ID}}">{{.Name}}</option>
                    {{end}}
                </select>
                <input type="text" name="note" placeholder="Note" class="border border-gray-300 rounded-md px-2 py-1 text-sm">
                <button type="submit" class="bg-indigo-600 text-white px-3 py-1 rounded-md text-sm">Valider</button>
            </form>
        </div>
    </div>
    {{else}}
    <div class="bg-white rounded-lg shadow p-8 text-center text-gray-400">Aucun signalement en attente.</div>
    {{end}}
</div>`,

	"users/list": `<div class="flex justify-between items-center mb-6">
    <h1 class="text-2xl font-bold text-gray-900">Utilisateurs</h1>
    <span class="text-sm text-gray-500">{{count .BlockedCount}} compte(s) bloqué(s)</span>
</div>
{{if .Error}}<div class="mb-4 p-3 bg-red-50 border border-red-200 text-red-700 rounded text-sm">{{.Error}}</div>{{end}}
{{if .Info}}<div class="mb-4 p-3 bg-green-50 border border-green-200 text-green-700 rounded text-sm">{{.Info}}</div>{{end}}
<div class="bg-white rounded-lg shadow overflow-hidden">
    <table class="min-w-full divide-y divide-gray-200">
        <thead class="bg-gray-50">
            <tr>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">#</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Nom</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Email</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">Rôle</th>
                <th class="px-6 py-3 text-left text-xs font-medium text-gray-500 uppercase">État</th>
                <th class="px-6 py-3"></th>
            </tr>
        </thead>
        <tbody class="divide-y divide-gray-200">
            {{range .Users}}
            <tr>
                <td class="px-6 py-4 text-sm text-gray-500">{{.ID}}</td>
                <td class="px-6 py-4 text-sm">{{.Username}}</td>
                <td class="px-6 py-4 text-sm">{{.Email}}</td>
                <td class="px-6 py-4 text-sm">{{if .Type}}{{.Type.Name}}{{else}}-{{end}}</td>
                <td class="px-6 py-4 text-sm">
                    {{if .Blocked}}<span class="px-2 py-1 rounded-full text-xs bg-red-100 text-red-800">Bloqué</span>
                    {{else}}<span class="px-2 py-1 rounded-full text-xs bg-green-100 text-green-800">Actif</span>{{end}}
                </td>
                <td class="px-6 py-4 text-sm text-right">
                    {{if .Blocked}}
                    <form method="POST" action="/users/{{.ID}}/unblock">
                        <button type="submit" class="text-indigo-600 hover:text-indigo-800">Débloquer</button>
                    </form>
                    {{end}}
                </td>
            </tr>
            {{end}}
        </tbody>
    </table>
</div>`,

	"sync": `<h1 class="text-2xl font-bold text-gray-900 mb-6">Synchronisation Firestore</h1>
{{if .Result}}
    {{if .Result.Success}}
    <div class="mb-6 p-4 bg-green-50 border border-green-200 rounded-lg">
        <div class="font-medium text-green-800">Synchronisation terminée</div>
        <div class="mt-2 grid grid-cols-4 gap-4 text-center">
            <div><div class="text-2xl font-bold text-green-900">{{count .Result.Created}}</div><div class="text-xs text-green-700">Créés</div></div>
            <div><div class="text-2xl font-bold text-green-900">{{count .Result.Updated}}</div><div class="text-xs text-green-700">Mis à jour</div></div>
            <div><div class="text-2xl font-bold text-green-900">{{count .Result.Skipped}}</div><div class="text-xs text-green-700">Ignorés</div></div>
            <div><div class="text-2xl font-bold text-green-900">{{count .Result.Errors}}</div><div class="text-xs text-green-700">Erreurs</div></div>
        </div>
    </div>
    {{else}}
    <div class="mb-6 p-4 bg-red-50 border border-red-200 text-red-700 rounded-lg">{{.Result.Message}}</div>
    {{end}}
{{end}}
<div class="bg-white rounded-lg shadow p-6">
    <p class="text-sm text-gray-600 mb-4">Réconcilie les signalements enregistrés dans Firestore avec la base relationnelle du serveur.</p>
    <form method="POST" action="/sync">
        <button type="submit" class="bg-indigo-600 text-white px-4 py-2 rounded-md font-medium">Lancer la synchronisation</button>
    </form>
</div>`,

	"error": `<div class="max-w-md mx-auto mt-16 bg-white p-8 rounded-lg shadow text-center">
    <h1 class="text-xl font-bold text-gray-900 mb-2">{{.Title}}</h1>
    <p class="text-gray-600">{{.Message}}</p>
    <a href="/" class="mt-6 inline-block text-indigo-600">Retour à l'accueil</a>
</div>`,
}
