package i18n

type translation struct {
	zh string
	de string
	fr string
}

// messages maps English text to its translations. Keys with format verbs are
// printed through Printer.T with the same arguments.
var messages = map[string]translation{
	// Statuses
	"Unknown":        {"未知", "Unbekannt", "Inconnu"},
	"Submitted":      {"已提交", "Eingereicht", "Soumise"},
	"Approved":       {"已批准", "Genehmigt", "Approuvée"},
	"Paid":           {"已付款", "Ausbezahlt", "Payée"},
	"Finished":       {"已完成", "Abgeschlossen", "Terminée"},
	"Rejected":       {"已拒绝", "Abgelehnt", "Refusée"},
	"Payment failed": {"付款失败", "Zahlung fehlgeschlagen", "Paiement échoué"},
	"Withdrawn":      {"已撤回", "Zurückgezogen", "Retirée"},

	// Claim fields
	"Status":      {"状态", "Status", "Statut"},
	"Amount":      {"金额", "Betrag", "Montant"},
	"Expense at":  {"消费时间", "Ausgabe am", "Dépense le"},
	"Recipient":   {"收款人", "Empfänger", "Bénéficiaire"},
	"Description": {"说明", "Beschreibung", "Description"},
	"Tags":        {"标签", "Tags", "Étiquettes"},
	"Bank":        {"银行", "Bank", "Banque"},
	"Account":     {"账号", "Konto", "Compte"},
	"Created":     {"创建时间", "Erstellt", "Créée"},
	"Updated":     {"更新时间", "Aktualisiert", "Mise à jour"},

	// Detail view
	"Claim %s":          {"报销单 %s", "Spesenantrag %s", "Demande %s"},
	"Loading claim...":  {"正在加载报销单...", "Spesenantrag wird geladen...", "Chargement de la demande..."},
	"Password required": {"需要密码", "Passwort erforderlich", "Mot de passe requis"},
	"Claim %s is protected. Enter its password to continue.": {
		"报销单 %s 受密码保护。请输入密码以继续。",
		"Spesenantrag %s ist geschützt. Gib das Passwort ein, um fortzufahren.",
		"La demande %s est protégée. Saisissez son mot de passe pour continuer.",
	},
	"Wrong password, try again.": {"密码错误，请重试。", "Falsches Passwort, bitte nochmals versuchen.", "Mot de passe incorrect, réessayez."},
	"Press r to retry or q to quit.": {
		"按 r 重试，按 q 退出。",
		"Drücke r zum Wiederholen oder q zum Beenden.",
		"Appuyez sur r pour réessayer ou q pour quitter.",
	},
	"Enter the claim password or press Esc to cancel": {
		"请输入报销单密码，或按 Esc 取消",
		"Gib das Passwort ein oder drücke Esc zum Abbrechen",
		"Saisissez le mot de passe ou appuyez sur Échap pour annuler",
	},
	"claim password":     {"报销单密码", "Passwort", "mot de passe"},
	"Progress":           {"进度", "Fortschritt", "Progression"},
	"zoom: %s":           {"缩放：%s", "Zoom: %s", "zoom : %s"},
	"Attachments (%d)":   {"附件（%d）", "Anhänge (%d)", "Pièces jointes (%d)"},
	"none":               {"无", "keine", "aucune"},
	"resolving link...":  {"正在获取链接...", "Link wird abgerufen...", "récupération du lien..."},
	"link unavailable":   {"链接不可用", "Link nicht verfügbar", "lien indisponible"},
	"refreshing link...": {"正在刷新链接...", "Link wird erneuert...", "actualisation du lien..."},
	"ready":              {"可用", "bereit", "prêt"},
	"until %s":           {"有效至 %s", "bis %s", "jusqu'à %s"},
	"Updating claim...":  {"正在更新报销单...", "Spesenantrag wird aktualisiert...", "Mise à jour de la demande..."},

	// Actions
	"Withdraw":        {"撤回", "Zurückziehen", "Retirer"},
	"Confirm receipt": {"确认收款", "Erhalt bestätigen", "Confirmer la réception"},
	"Withdraw this claim? This cannot be undone.": {
		"撤回此报销单？此操作无法撤销。",
		"Diesen Spesenantrag zurückziehen? Das kann nicht rückgängig gemacht werden.",
		"Retirer cette demande ? Cette action est irréversible.",
	},
	"Confirm that you received the payout?": {
		"确认您已收到款项？",
		"Bestätigen, dass du die Auszahlung erhalten hast?",
		"Confirmez-vous avoir reçu le paiement ?",
	},
	"Claim withdrawn":                   {"报销单已撤回", "Spesenantrag zurückgezogen", "Demande retirée"},
	"Receipt confirmed, claim finished": {"已确认收款，报销单已完成", "Erhalt bestätigt, Spesenantrag abgeschlossen", "Réception confirmée, demande terminée"},
	"Claim updated":                     {"报销单已更新", "Spesenantrag aktualisiert", "Demande mise à jour"},
	"Cancelled":                         {"已取消", "Abgebrochen", "Annulé"},
	"%s is not available for a %s claim": {
		"%[1]s 不适用于状态为“%[2]s”的报销单",
		"%s ist bei Status %s nicht möglich",
		"%s n'est pas possible pour une demande au statut %s",
	},
	"Claim is %s; this needs %s": {
		"报销单状态为“%s”；此操作需要“%s”",
		"Spesenantrag ist %s; dafür braucht es %s",
		"La demande est %s ; il faut %s",
	},
	"Copied %s":             {"已复制%s", "%s kopiert", "%s copié"},
	"Could not copy %s: %v": {"无法复制%s：%v", "%s konnte nicht kopiert werden: %v", "Impossible de copier %s : %v"},
	"Opened %s":             {"已打开 %s", "%s geöffnet", "%s ouvert"},
	"Could not open %s: %v": {"无法打开 %s：%v", "%s konnte nicht geöffnet werden: %v", "Impossible d'ouvrir %s : %v"},
	"claim id":              {"报销单编号", "Antragsnummer", "numéro de demande"},
	"link":                  {"链接", "Link", "lien"},

	"download link unavailable": {"下载链接不可用", "Download-Link nicht verfügbar", "lien de téléchargement indisponible"},

	// Errors shown to the user
	"claim not found":                {"未找到报销单", "Spesenantrag nicht gefunden", "demande introuvable"},
	"could not reach the claims API": {"无法连接报销服务", "Der Spesendienst ist nicht erreichbar", "impossible de joindre le service des demandes"},
	"password required":              {"需要密码", "Passwort erforderlich", "mot de passe requis"},
	"action not allowed":             {"不允许此操作", "Aktion nicht erlaubt", "action non autorisée"},
	"another action is in progress":  {"另一项操作正在进行中", "Eine andere Aktion läuft bereits", "une autre action est en cours"},
	"failed to store password":       {"无法保存密码", "Passwort konnte nicht gespeichert werden", "impossible d'enregistrer le mot de passe"},
	"Invalid configuration":          {"配置无效", "Ungültige Konfiguration", "Configuration invalide"},
	"Failed to load tags":            {"无法加载标签", "Tags konnten nicht geladen werden", "Impossible de charger les étiquettes"},
	"Failed to create claim":         {"无法创建报销单", "Spesenantrag konnte nicht erstellt werden", "Impossible de créer la demande"},
	"Failed to save password":        {"无法保存密码", "Passwort konnte nicht gespeichert werden", "Impossible d'enregistrer le mot de passe"},
	"Failed to forget password":      {"无法删除密码", "Passwort konnte nicht entfernt werden", "Impossible d'oublier le mot de passe"},
	"No password saved":              {"未保存密码", "Kein Passwort gespeichert", "Aucun mot de passe enregistré"},
	"Failed to open local database":  {"无法打开本地数据库", "Lokale Datenbank konnte nicht geöffnet werden", "Impossible d'ouvrir la base de données locale"},
	"Failed to copy link":            {"无法复制链接", "Link konnte nicht kopiert werden", "Impossible de copier le lien"},
	"Claim id cannot be empty":       {"报销单编号不能为空", "Antragsnummer darf nicht leer sein", "Le numéro de demande ne peut pas être vide"},
	"Action not available":           {"操作不可用", "Aktion nicht verfügbar", "Action indisponible"},
	"Interrupted":                    {"已中断", "Unterbrochen", "Interrompu"},

	// Command output
	"Claim %s created":                {"报销单 %s 已创建", "Spesenantrag %s erstellt", "Demande %s créée"},
	"Share link: %s":                  {"分享链接：%s", "Freigabelink: %s", "Lien de partage : %s"},
	"Password saved on this machine":  {"密码已保存在本机", "Passwort auf diesem Gerät gespeichert", "Mot de passe enregistré sur cet appareil"},
	"Nothing changed.":                {"未做任何更改。", "Nichts geändert.", "Aucune modification."},
	"Claim %s is now %s":              {"报销单 %s 当前状态：%s", "Spesenantrag %s ist jetzt %s", "La demande %s est maintenant %s"},
	"Password for claim %s":           {"报销单 %s 的密码", "Passwort für Spesenantrag %s", "Mot de passe de la demande %s"},
	"Password saved for claim %s":     {"已保存报销单 %s 的密码", "Passwort für Spesenantrag %s gespeichert", "Mot de passe enregistré pour la demande %s"},
	"Password forgotten for claim %s": {"已删除报销单 %s 的密码", "Passwort für Spesenantrag %s entfernt", "Mot de passe oublié pour la demande %s"},
	"No tags defined.":                {"尚未定义标签。", "Keine Tags definiert.", "Aucune étiquette définie."},
	"Tags (%d)":                       {"标签（%d）", "Tags (%d)", "Étiquettes (%d)"},
	"No claims opened yet.":           {"尚未打开任何报销单。", "Noch keine Spesenanträge geöffnet.", "Aucune demande ouverte pour l'instant."},
	"Claim %s removed from the list":  {"已从列表中移除报销单 %s", "Spesenantrag %s aus der Liste entfernt", "Demande %s retirée de la liste"},
	"Link copied to clipboard":        {"链接已复制到剪贴板", "Link in die Zwischenablage kopiert", "Lien copié dans le presse-papiers"},
	"Available: %s":                   {"可用操作：%s", "Verfügbar: %s", "Disponible : %s"},
}
