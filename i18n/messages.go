package i18n

var fr = map[string]string{
	// validation
	"required":       "Requis",
	"email":          "Adresse email invalide",
	"too_long":       "Trop long",
	"too_short":      "Trop court",
	"must_match":     "Les valeurs ne correspondent pas",
	"invalid_number": "Nombre invalide",
	"invalid":        "Valeur invalide",

	// layout
	"app.name":        "ShopHub",
	"app.description": "Mini e-commerce",
	"common.error":    "Erreur",
	"footer.rights":   "E-Commerce Mini Projet - Tous droits réservés",
	"nav.home":        "Accueil",
	"nav.add_product": "Ajouter Produit",
	"nav.login":       "Connexion",
	"nav.register":    "Inscription",
	"nav.logout":      "Déconnexion",

	// home
	"home.page_title":   "Accueil",
	"home.title":        "Bienvenue sur ShopHub",
	"home.subtitle":     "Découvrez nos produits de qualité",
	"home.load_error":   "Erreur lors du chargement des produits. Vérifiez que le backend est démarré.",
	"home.empty_title":  "Aucun produit disponible",
	"home.empty_body":   "Les produits seront bientôt ajoutés.",
	"home.empty_action": "Ajouter un produit",
	"home.all_products": "Tous les produits",
	"home.refresh":      "Actualiser",

	// product card
	"product.in_stock":     "En stock",
	"product.out_of_stock": "Rupture",
	"product.buy":          "Acheter",
	"product.unavailable":  "Indisponible",
	"product.added_on":     "Ajouté le",
	"product.stock_one":    "disponible",
	"product.stock_many":   "disponibles",

	// add product
	"add.page_title":              "Ajouter un produit",
	"add.title":                   "Ajouter un nouveau produit",
	"add.name":                    "Nom du produit",
	"add.name_placeholder":        "Ex: MacBook Pro",
	"add.description":             "Description",
	"add.description_placeholder": "Décrivez le produit...",
	"add.price":                   "Prix (€)",
	"add.quantity":                "Quantité en stock",
	"add.submit":                  "Ajouter le produit",
	"add.cancel":                  "Annuler",
	"add.note_title":              "Note importante :",
	"add.note":                    "Seuls les administrateurs peuvent ajouter des produits. Si vous n'êtes pas admin, cette action échouera.",
	"product.name_required":       "Le nom du produit est requis",
	"product.name_too_long":       "Le nom du produit ne doit pas dépasser 200 caractères",
	"product.price_positive":      "Le prix doit être supérieur à 0",
	"product.price_range":         "Le prix doit avoir au plus 8 chiffres avant la virgule et 2 après",
	"product.quantity_positive":   "La quantité doit être supérieure ou égale à 0",
	"product.created":             "Produit ajouté avec succès !",
	"product.forbidden":           "Vous n'avez pas les permissions pour ajouter un produit. Seuls les administrateurs peuvent ajouter des produits.",
	"product.create_failed":       "Erreur lors de l'ajout du produit. Vérifiez que le backend est démarré.",
	"session.expired":             "Votre session a expiré. Veuillez vous reconnecter.",

	// login
	"login.page_title":          "Connexion",
	"login.title":               "Connexion",
	"login.email":               "Email",
	"login.password":            "Mot de passe",
	"login.submit":              "Se connecter",
	"login.no_account":          "Pas encore de compte ?",
	"login.register_link":       "S'inscrire",
	"login.invalid_credentials": "Email ou mot de passe incorrect",
	"login.failed":              "Erreur lors de la connexion. Vérifiez que le backend est démarré.",

	// register
	"register.page_title":         "Inscription",
	"register.title":              "Inscription",
	"register.name":               "Nom complet",
	"register.confirm":            "Confirmer le mot de passe",
	"register.submit":             "S'inscrire",
	"register.have_account":       "Déjà un compte ?",
	"register.login_link":         "Se connecter",
	"register.name_required":      "Le nom est requis",
	"register.email_invalid":      "Adresse email invalide",
	"register.password_mismatch":  "Les mots de passe ne correspondent pas",
	"register.password_too_short": "Le mot de passe doit contenir au moins 8 caractères",
	"register.email_taken":        "Cet email est déjà utilisé",
	"register.failed":             "Erreur lors de l'inscription",
	"register.unreachable":        "Erreur lors de l'inscription. Vérifiez que le backend est démarré.",

	// cross-cutting
	"auth.login_required":    "Veuillez vous connecter pour accéder à cette page.",
	"auth.logged_out":        "Vous êtes déconnecté.",
	"auth.registered_login":  "Inscription réussie. Connectez-vous pour continuer.",
	"auth.too_many_attempts": "Trop de tentatives. Réessayez dans un instant.",
	"csrf.invalid":           "Le formulaire a expiré. Veuillez réessayer.",
}

var en = map[string]string{
	"required":       "Required",
	"email":          "Invalid email address",
	"too_long":       "Too long",
	"too_short":      "Too short",
	"must_match":     "Values do not match",
	"invalid_number": "Invalid number",
	"invalid":        "Invalid value",

	"app.name":        "ShopHub",
	"app.description": "Mini e-commerce",
	"common.error":    "Error",
	"footer.rights":   "E-Commerce Mini Project - All rights reserved",
	"nav.home":        "Home",
	"nav.add_product": "Add product",
	"nav.login":       "Log in",
	"nav.register":    "Sign up",
	"nav.logout":      "Log out",

	"home.page_title":   "Home",
	"home.title":        "Welcome to ShopHub",
	"home.subtitle":     "Discover our quality products",
	"home.load_error":   "Could not load products. Check that the backend is running.",
	"home.empty_title":  "No products available",
	"home.empty_body":   "Products will be added soon.",
	"home.empty_action": "Add a product",
	"home.all_products": "All products",
	"home.refresh":      "Refresh",

	"product.in_stock":     "In stock",
	"product.out_of_stock": "Out of stock",
	"product.buy":          "Buy",
	"product.unavailable":  "Unavailable",
	"product.added_on":     "Added on",
	"product.stock_one":    "available",
	"product.stock_many":   "available",

	"add.page_title":              "Add a product",
	"add.title":                   "Add a new product",
	"add.name":                    "Product name",
	"add.name_placeholder":        "e.g. MacBook Pro",
	"add.description":             "Description",
	"add.description_placeholder": "Describe the product...",
	"add.price":                   "Price (€)",
	"add.quantity":                "Quantity in stock",
	"add.submit":                  "Add product",
	"add.cancel":                  "Cancel",
	"add.note_title":              "Important:",
	"add.note":                    "Only administrators can add products. If you are not an admin, this action will fail.",
	"product.name_required":       "Product name is required",
	"product.name_too_long":       "Product name must be at most 200 characters",
	"product.price_positive":      "Price must be greater than 0",
	"product.price_range":         "Price must have at most 8 digits before the decimal point and 2 after",
	"product.quantity_positive":   "Quantity must be greater than or equal to 0",
	"product.created":             "Product added successfully!",
	"product.forbidden":           "You do not have permission to add a product. Only administrators can add products.",
	"product.create_failed":       "Could not add the product. Check that the backend is running.",
	"session.expired":             "Your session has expired. Please log in again.",

	"login.page_title":          "Log in",
	"login.title":               "Log in",
	"login.email":               "Email",
	"login.password":            "Password",
	"login.submit":              "Log in",
	"login.no_account":          "No account yet?",
	"login.register_link":       "Sign up",
	"login.invalid_credentials": "Incorrect email or password",
	"login.failed":              "Login failed. Check that the backend is running.",

	"register.page_title":         "Sign up",
	"register.title":              "Sign up",
	"register.name":               "Full name",
	"register.confirm":            "Confirm password",
	"register.submit":             "Sign up",
	"register.have_account":       "Already have an account?",
	"register.login_link":         "Log in",
	"register.name_required":      "Name is required",
	"register.email_invalid":      "Invalid email address",
	"register.password_mismatch":  "Passwords do not match",
	"register.password_too_short": "Password must be at least 8 characters",
	"register.email_taken":        "This email is already in use",
	"register.failed":             "Registration failed",
	"register.unreachable":        "Registration failed. Check that the backend is running.",

	"auth.login_required":    "Please log in to access this page.",
	"auth.logged_out":        "You are logged out.",
	"auth.registered_login":  "Registration complete. Please log in to continue.",
	"auth.too_many_attempts": "Too many attempts. Try again in a moment.",
	"csrf.invalid":           "The form has expired. Please try again.",
}
